package cuesheet

import (
	"fmt"
	"strings"
)

// Render writes the sheet back out as cue sheet text. Parsing the output
// yields an equivalent sheet.
func Render(s *Sheet) string {
	var b strings.Builder
	for _, c := range s.Comments {
		fmt.Fprintf(&b, "REM %s %s\n", c.Name, quoteIfSpaced(c.Value))
	}
	writeValue(&b, "", "CATALOG", s.Catalog, false)
	writeValue(&b, "", "CDTEXTFILE", s.CDTextFile, true)
	writeValue(&b, "", "PERFORMER", s.Performer, true)
	writeValue(&b, "", "SONGWRITER", s.SongWriter, true)
	writeValue(&b, "", "TITLE", s.Title, true)
	for _, f := range s.Files {
		fmt.Fprintf(&b, "FILE \"%s\" %s\n", f.Name, f.Type)
		for _, t := range f.Tracks {
			renderTrack(&b, t)
		}
	}
	return b.String()
}

func renderTrack(b *strings.Builder, t Track) {
	fmt.Fprintf(b, "  TRACK %02d %s\n", t.Number, t.Type)
	const indent = "    "
	writeValue(b, indent, "TITLE", t.Title, true)
	writeValue(b, indent, "PERFORMER", t.Performer, true)
	writeValue(b, indent, "SONGWRITER", t.SongWriter, true)
	writeValue(b, indent, "FLAGS", t.Flags, false)
	writeValue(b, indent, "ISRC", t.ISRC, false)
	if t.PreGap != nil {
		writeGap(b, indent, "PREGAP", *t.PreGap)
	}
	for _, idx := range t.Indexes {
		fmt.Fprintf(b, "%sINDEX %02d %s\n", indent, idx.Number, idx.Time)
	}
	if t.PostGap != nil {
		writeGap(b, indent, "POSTGAP", *t.PostGap)
	}
}

func writeValue(b *strings.Builder, indent, keyword, value string, quoted bool) {
	if value == "" {
		return
	}
	if quoted {
		value = `"` + value + `"`
	}
	fmt.Fprintf(b, "%s%s %s\n", indent, keyword, value)
}

func writeGap(b *strings.Builder, indent, keyword string, idx Index) {
	if idx.Number == 0 {
		fmt.Fprintf(b, "%s%s %s\n", indent, keyword, idx.Time)
		return
	}
	fmt.Fprintf(b, "%s%s %02d %s\n", indent, keyword, idx.Number, idx.Time)
}

func quoteIfSpaced(value string) string {
	if strings.ContainsAny(value, " \t") {
		return `"` + value + `"`
	}
	return value
}
