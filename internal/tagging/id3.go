package tagging

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// Tagger writes tags to an encoded file.
type Tagger interface {
	Tag(path string, tags Tags) error
}

// NopTagger leaves files untouched. It serves encoders whose tags are passed
// on the command line or that have no tag support.
type NopTagger struct{}

// Tag does nothing.
func (NopTagger) Tag(string, Tags) error { return nil }

// ID3Tagger writes ID3v2 frames to MP3 files.
type ID3Tagger struct {
	// Version is the ID3v2 minor version: 3 or 4.
	Version int
	// CoverPath, when set, is embedded as the front cover picture.
	CoverPath string
}

// Tag replaces the tag frames of the MP3 at path.
func (t ID3Tagger) Tag(path string, tags Tags) error {
	var cover []byte
	if t.CoverPath != "" {
		data, err := os.ReadFile(t.CoverPath)
		if err != nil {
			return fmt.Errorf("read cover: %w", err)
		}
		cover = data
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer tag.Close()

	version := byte(4)
	if t.Version == 3 {
		version = 3
	}
	enc := textEncoding(version)
	tag.SetVersion(version)
	tag.SetDefaultEncoding(enc)

	setText(tag, enc, "TIT2", tags.Title)
	setText(tag, enc, "TPE1", tags.Artist)
	setText(tag, enc, "TALB", tags.Album)
	setText(tag, enc, "TYER", tags.Year)
	if version == 4 {
		setText(tag, enc, "TDRC", tags.Year)
	}
	setText(tag, enc, "TCOM", tags.Composer)
	setText(tag, enc, "TCON", tags.Genre)
	setText(tag, enc, "TRCK", tags.TrackLabel())

	if cover != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    enc,
			MimeType:    coverMimeType(t.CoverPath, cover),
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     cover,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags to %s: %w", filepath.Base(path), err)
	}
	return nil
}

// textEncoding picks the text encoding for a tag version. ID3v2.3 defines
// only ISO-8859-1 and UTF-16.
func textEncoding(version byte) id3v2.Encoding {
	if version == 3 {
		return id3v2.EncodingUTF16
	}
	return id3v2.EncodingUTF8
}

func setText(tag *id3v2.Tag, enc id3v2.Encoding, id, value string) {
	tag.DeleteFrames(id)
	if value == "" {
		return
	}
	tag.AddTextFrame(id, enc, value)
}

func coverMimeType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return http.DetectContentType(data)
}
