package cuesheet

import "fmt"

// Sheet is a parsed cue sheet. Empty strings stand for commands that were not
// present.
type Sheet struct {
	Catalog    string    `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	CDTextFile string    `json:"cdtextfile,omitempty" yaml:"cdtextfile,omitempty"`
	Performer  string    `json:"performer,omitempty" yaml:"performer,omitempty"`
	SongWriter string    `json:"songwriter,omitempty" yaml:"songwriter,omitempty"`
	Title      string    `json:"title,omitempty" yaml:"title,omitempty"`
	Comments   []Comment `json:"comments,omitempty" yaml:"comments,omitempty"`
	Files      []File    `json:"files" yaml:"files"`
	// IsStandard is true iff exactly one FILE command appears.
	IsStandard bool `json:"is_standard" yaml:"is_standard"`
	// IsNoncompliant is only meaningful when IsStandard is false.
	IsNoncompliant bool `json:"is_noncompliant" yaml:"is_noncompliant"`
}

// Comment is one REM line. Names may repeat; order follows the source.
type Comment struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// File is one FILE entry and the tracks attached to it.
type File struct {
	Name   string  `json:"name" yaml:"name"`
	Type   string  `json:"type" yaml:"type"`
	Tracks []Track `json:"tracks" yaml:"tracks"`
}

// Track is one TRACK entry.
type Track struct {
	Number     int     `json:"number" yaml:"number"`
	Type       string  `json:"type" yaml:"type"`
	Title      string  `json:"title,omitempty" yaml:"title,omitempty"`
	Performer  string  `json:"performer,omitempty" yaml:"performer,omitempty"`
	SongWriter string  `json:"songwriter,omitempty" yaml:"songwriter,omitempty"`
	ISRC       string  `json:"isrc,omitempty" yaml:"isrc,omitempty"`
	Flags      string  `json:"flags,omitempty" yaml:"flags,omitempty"`
	Indexes    []Index `json:"indexes" yaml:"indexes"`
	PreGap     *Index  `json:"pregap,omitempty" yaml:"pregap,omitempty"`
	PostGap    *Index  `json:"postgap,omitempty" yaml:"postgap,omitempty"`
}

// Index is a numbered timecode marker within a track.
type Index struct {
	Number int       `json:"number" yaml:"number"`
	Time   IndexTime `json:"time" yaml:"time"`
}

const maxIndexNumber = 99

// NewIndex validates the index number range.
func NewIndex(number int, t IndexTime) (Index, error) {
	if number < 0 || number > maxIndexNumber {
		return Index{}, &FormatError{
			Field:   "IndexNum",
			Message: fmt.Sprintf("index number %d must be between 0 and %d", number, maxIndexNumber),
		}
	}
	return Index{Number: number, Time: t}, nil
}

// FindIndex returns the first index with the given number in insertion order.
func (t Track) FindIndex(number int) (Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Number == number {
			return idx, true
		}
	}
	return Index{}, false
}

// Label names the track for messages: its title when set, otherwise its number.
func (t Track) Label() string {
	if t.Title != "" {
		return t.Title
	}
	return fmt.Sprintf("track %02d", t.Number)
}

// CommentValue returns the value of the first comment with the given name.
func (s *Sheet) CommentValue(name string) (string, bool) {
	for _, c := range s.Comments {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Tracks returns every track across all files in document order.
func (s *Sheet) Tracks() []Track {
	var out []Track
	for _, f := range s.Files {
		out = append(out, f.Tracks...)
	}
	return out
}

// TrackCount is the number of tracks on the disc: the single file's track
// count for standard sheets, the file count otherwise.
func (s *Sheet) TrackCount() int {
	if s.IsStandard {
		if len(s.Files) == 0 {
			return 0
		}
		return len(s.Files[0].Tracks)
	}
	return len(s.Files)
}

// Layout returns the classification of the sheet.
func (s *Sheet) Layout() Layout {
	switch {
	case s.IsStandard:
		return LayoutStandard
	case s.IsNoncompliant:
		return LayoutNoncompliant
	default:
		return LayoutNonstandard
	}
}

// NextTrack returns the track following position i, if any.
func NextTrack(tracks []Track, i int) (Track, bool) {
	if i < 0 || i+1 >= len(tracks) {
		return Track{}, false
	}
	return tracks[i+1], true
}
