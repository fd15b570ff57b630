package cuesheet_test

import (
	"strings"
	"testing"

	"cuesplit/internal/cuesheet"
)

func tokenizeText(t *testing.T, text string) []cuesheet.Line {
	t.Helper()
	var lines []cuesheet.Line
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		l, err := cuesheet.Tokenize(raw)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", raw, err)
		}
		lines = append(lines, l)
	}
	return lines
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want cuesheet.Layout
	}{
		{
			name: "single file",
			text: "FILE \"a.wav\" WAVE\nTRACK 01 AUDIO\nTRACK 02 AUDIO\nTRACK 03 AUDIO",
			want: cuesheet.LayoutStandard,
		},
		{
			name: "one track per file",
			text: "FILE \"a.wav\" WAVE\nTRACK 01 AUDIO\nFILE \"b.wav\" WAVE\nTRACK 02 AUDIO",
			want: cuesheet.LayoutNonstandard,
		},
		{
			name: "second track inside first file",
			text: "FILE \"a.wav\" WAVE\nTRACK 01 AUDIO\nTRACK 02 AUDIO\nFILE \"b.wav\" WAVE",
			want: cuesheet.LayoutNoncompliant,
		},
		{
			name: "crowded section after first anchor",
			text: "FILE \"a.wav\" WAVE\nTRACK 01 AUDIO\nFILE \"b.wav\" WAVE\nTRACK 02 AUDIO\nTRACK 03 AUDIO\nFILE \"c.wav\" WAVE",
			want: cuesheet.LayoutNoncompliant,
		},
		{
			name: "no files",
			text: "TITLE \"x\"\nTRACK 01 AUDIO",
			want: cuesheet.LayoutNonstandard,
		},
		{
			name: "tracks before first file do not count",
			text: "TRACK 01 AUDIO\nTRACK 02 AUDIO\nFILE \"a.wav\" WAVE\nTRACK 03 AUDIO\nFILE \"b.wav\" WAVE\nTRACK 04 AUDIO",
			want: cuesheet.LayoutNonstandard,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cuesheet.Classify(tokenizeText(t, tc.text))
			if got != tc.want {
				t.Fatalf("Classify = %v want %v", got, tc.want)
			}
		})
	}
}

func TestLayoutString(t *testing.T) {
	if cuesheet.LayoutNoncompliant.String() != "nonstandard-noncompliant" {
		t.Fatalf("unexpected string %q", cuesheet.LayoutNoncompliant.String())
	}
	if cuesheet.LayoutStandard.String() != "standard" {
		t.Fatalf("unexpected string %q", cuesheet.LayoutStandard.String())
	}
}
