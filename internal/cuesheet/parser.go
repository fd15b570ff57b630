package cuesheet

import "strings"

// Parse parses cue sheet text.
func Parse(text string) (*Sheet, error) {
	return ParseLines(splitLines(text))
}

// ParseLines parses a cue sheet given as raw lines. Blank lines are dropped
// before tokenizing.
func ParseLines(raw []string) (*Sheet, error) {
	lines, err := tokenizeAll(raw)
	if err != nil {
		return nil, err
	}
	return build(lines, Classify(lines))
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// buildState is threaded through the assembly fold. Tracks are collected in
// document order and attached to files once the pass completes.
type buildState struct {
	sheet         Sheet
	seenFirstFile bool
	tracks        []Track
	// open is the index into tracks of the track whose span is being read,
	// or -1 before the first TRACK line.
	open int
}

func build(lines []Line, layout Layout) (*Sheet, error) {
	state := buildState{
		sheet: Sheet{
			Files:          []File{},
			IsStandard:     layout == LayoutStandard,
			IsNoncompliant: layout == LayoutNoncompliant,
		},
		open: -1,
	}
	for i, l := range lines {
		if err := state.step(l); err != nil {
			return nil, atLine(err, i+1, l.Keyword)
		}
	}
	return state.finish()
}

func (s *buildState) step(l Line) error {
	switch l.Command {
	case CommandRem:
		c, err := parseComment(l)
		if err != nil {
			return err
		}
		s.sheet.Comments = append(s.sheet.Comments, c)
		return nil
	case CommandFile:
		f, err := parseFileHeader(l)
		if err != nil {
			return err
		}
		f.Tracks = []Track{}
		s.sheet.Files = append(s.sheet.Files, f)
		s.seenFirstFile = true
		return nil
	case CommandTrack:
		t, err := parseTrackHeader(l)
		if err != nil {
			return err
		}
		s.tracks = append(s.tracks, t)
		s.open = len(s.tracks) - 1
		return nil
	case CommandIndex, CommandPregap, CommandPostgap:
		return s.trackIndex(l)
	case CommandUnrecognized:
		return nil
	}

	// Remaining commands carry a single string value at root scope, track
	// scope, or both.
	root := l.Command.isRootValue()
	track := l.Command.isTrackValue() && s.open >= 0
	if !root && !track {
		return nil
	}
	value, err := parseSingleValue(l)
	if err != nil {
		return err
	}
	if root && !s.seenFirstFile {
		s.setRootValue(l.Command, value)
	}
	if track {
		s.setTrackValue(l.Command, value)
	}
	return nil
}

func (s *buildState) setRootValue(c Command, value string) {
	switch c {
	case CommandCatalog:
		s.sheet.Catalog = value
	case CommandCDTextFile:
		s.sheet.CDTextFile = value
	case CommandPerformer:
		s.sheet.Performer = value
	case CommandSongWriter:
		s.sheet.SongWriter = value
	case CommandTitle:
		s.sheet.Title = value
	}
}

func (s *buildState) setTrackValue(c Command, value string) {
	t := &s.tracks[s.open]
	switch c {
	case CommandFlags:
		t.Flags = value
	case CommandISRC:
		t.ISRC = value
	case CommandPerformer:
		t.Performer = value
	case CommandSongWriter:
		t.SongWriter = value
	case CommandTitle:
		t.Title = value
	}
}

func (s *buildState) trackIndex(l Line) error {
	if s.open < 0 {
		return nil
	}
	t := &s.tracks[s.open]
	switch l.Command {
	case CommandIndex:
		idx, err := parseIndex(l)
		if err != nil {
			return err
		}
		t.Indexes = append(t.Indexes, idx)
	case CommandPregap:
		idx, err := parseGap(l)
		if err != nil {
			return err
		}
		t.PreGap = &idx
	case CommandPostgap:
		idx, err := parseGap(l)
		if err != nil {
			return err
		}
		t.PostGap = &idx
	}
	return nil
}

func (s *buildState) finish() (*Sheet, error) {
	sheet := s.sheet
	if sheet.IsStandard {
		sheet.Files[0].Tracks = append(sheet.Files[0].Tracks, s.tracks...)
		return &sheet, nil
	}
	if len(sheet.Files) != len(s.tracks) {
		return nil, &IntegrityError{Files: len(sheet.Files), Tracks: len(s.tracks)}
	}
	for i := range sheet.Files {
		sheet.Files[i].Tracks = append(sheet.Files[i].Tracks, s.tracks[i])
	}
	return &sheet, nil
}
