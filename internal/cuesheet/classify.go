package cuesheet

// Layout is the classification of a cue sheet.
type Layout int

const (
	// LayoutStandard has exactly one FILE holding every track.
	LayoutStandard Layout = iota
	// LayoutNonstandard has one FILE per track.
	LayoutNonstandard
	// LayoutNoncompliant has several FILE entries with tracks declared
	// inside another track's file section.
	LayoutNoncompliant
)

func (l Layout) String() string {
	switch l {
	case LayoutStandard:
		return "standard"
	case LayoutNonstandard:
		return "nonstandard"
	case LayoutNoncompliant:
		return "nonstandard-noncompliant"
	default:
		return "unknown"
	}
}

// Classify scans the tokenized lines and reports their layout.
func Classify(lines []Line) Layout {
	if isStandard(lines) {
		return LayoutStandard
	}
	if isNoncompliant(lines) {
		return LayoutNoncompliant
	}
	return LayoutNonstandard
}

func isStandard(lines []Line) bool {
	files := 0
	for _, l := range lines {
		if l.Command == CommandFile {
			files++
		}
	}
	return files == 1
}

// isNoncompliant anchors a forward scan at every FILE line. A scan reports
// true as soon as more TRACK lines than FILE lines have been seen, and is
// abandoned once a second FILE line is reached.
func isNoncompliant(lines []Line) bool {
	for i, anchor := range lines {
		if anchor.Command != CommandFile {
			continue
		}
		if scanFromFile(lines[i+1:]) {
			return true
		}
	}
	return false
}

func scanFromFile(following []Line) bool {
	fileCount := 1
	trackCount := 0
	for _, l := range following {
		if l.Command == CommandTrack {
			trackCount++
		}
		if trackCount > fileCount {
			return true
		}
		if l.Command == CommandFile {
			fileCount++
		}
		if fileCount > 1 {
			return false
		}
	}
	return false
}
