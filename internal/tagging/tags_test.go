package tagging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bogem/id3v2"

	"cuesplit/internal/cuesheet"
	"cuesplit/internal/tagging"
)

const sheetText = `REM GENRE "Art Pop"
REM DATE 1999
PERFORMER "Glass Harbour"
TITLE "Undertow"
FILE "Undertow.flac" WAVE
  TRACK 01 AUDIO
    TITLE "First Light"
    SONGWRITER "R. Vale"
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    TITLE "Second Wind"
    INDEX 01 04:00:00
`

func parseSheet(t *testing.T) *cuesheet.Sheet {
	t.Helper()
	sheet, err := cuesheet.Parse(sheetText)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return sheet
}

func TestFromSheet(t *testing.T) {
	sheet := parseSheet(t)
	got := tagging.FromSheet(sheet, sheet.Files[0].Tracks[0])
	want := tagging.Tags{
		Title:      "First Light",
		Artist:     "Glass Harbour",
		Album:      "Undertow",
		Year:       "1999",
		Composer:   "R. Vale",
		Genre:      "Art Pop",
		Track:      1,
		TrackCount: 2,
	}
	if got != want {
		t.Fatalf("unexpected tags:\n got %#v\nwant %#v", got, want)
	}
}

func TestFromSheetOmitsTrackNumberZero(t *testing.T) {
	sheet := parseSheet(t)
	track := sheet.Files[0].Tracks[1]
	track.Number = 0
	got := tagging.FromSheet(sheet, track)
	if got.Track != 0 || got.TrackCount != 0 || got.TrackLabel() != "" {
		t.Fatalf("expected no track position, got %#v", got)
	}
}

func TestVorbisArgs(t *testing.T) {
	sheet := parseSheet(t)
	got := tagging.VorbisArgs(tagging.FromSheet(sheet, sheet.Files[0].Tracks[0]))
	want := []string{
		"-t", "First Light", "-a", "Glass Harbour", "-l", "Undertow", "-d", "1999", "-G", "Art Pop",
		"-N", "1", "-c", "COMPOSER=R. Vale", "-c", "TRACKTOTAL=2",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestQaacArgs(t *testing.T) {
	got := tagging.QaacArgs(tagging.Tags{Title: "Second Wind", Track: 2, TrackCount: 9}, "/covers/front.jpg")
	want := []string{"--title", "Second Wind", "--track", "2/9", "--artwork", "/covers/front.jpg"}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected args: %q", got)
	}
}

func TestID3TaggerWritesFrames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "01.mp3")
	if err := os.WriteFile(path, []byte("not really mpeg audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	cover := filepath.Join(dir, "cover.png")
	if err := os.WriteFile(cover, []byte("\x89PNG\r\n\x1a\nfake"), 0o644); err != nil {
		t.Fatal(err)
	}

	sheet := parseSheet(t)
	tagger := tagging.ID3Tagger{Version: 4, CoverPath: cover}
	if err := tagger.Tag(path, tagging.FromSheet(sheet, sheet.Files[0].Tracks[0])); err != nil {
		t.Fatalf("Tag: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	frames := map[string]string{
		"TIT2": "First Light",
		"TPE1": "Glass Harbour",
		"TALB": "Undertow",
		"TYER": "1999",
		"TCOM": "R. Vale",
		"TCON": "Art Pop",
		"TRCK": "1/2",
	}
	for id, want := range frames {
		if got := tag.GetTextFrame(id).Text; got != want {
			t.Fatalf("frame %s = %q want %q", id, got, want)
		}
	}
	pics := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pics) != 1 {
		t.Fatalf("expected one picture frame, got %d", len(pics))
	}
	pic, ok := pics[0].(id3v2.PictureFrame)
	if !ok || pic.MimeType != "image/png" || pic.PictureType != id3v2.PTFrontCover {
		t.Fatalf("unexpected picture frame: %#v", pics[0])
	}
}

func TestID3TaggerVersion3UsesUTF16(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "01.mp3")
	if err := os.WriteFile(path, []byte("not really mpeg audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	tagger := tagging.ID3Tagger{Version: 3}
	if err := tagger.Tag(path, tagging.Tags{Title: "Héllo", Year: "1999"}); err != nil {
		t.Fatalf("Tag: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 10 || string(data[:3]) != "ID3" || data[3] != 3 {
		t.Fatalf("expected ID3v2.3 header, got % x", data[:min(len(data), 10)])
	}
	idx := bytes.Index(data, []byte("TIT2"))
	if idx < 0 || idx+10 >= len(data) {
		t.Fatal("TIT2 frame not written")
	}
	// Frame header is id(4) size(4) flags(2), followed by the encoding byte.
	if got := data[idx+10]; got != id3v2.EncodingUTF16.Key {
		t.Fatalf("TIT2 encoding byte = %d, want %d", got, id3v2.EncodingUTF16.Key)
	}
	if bytes.Contains(data, []byte("TDRC")) {
		t.Fatal("TDRC is not a v2.3 frame")
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()
	if got := tag.GetTextFrame("TIT2").Text; got != "Héllo" {
		t.Fatalf("TIT2 = %q", got)
	}
}

func TestID3TaggerMissingCover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "01.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	tagger := tagging.ID3Tagger{CoverPath: filepath.Join(dir, "missing.jpg")}
	if err := tagger.Tag(path, tagging.Tags{Title: "x"}); err == nil {
		t.Fatal("expected error for missing cover")
	}
}
