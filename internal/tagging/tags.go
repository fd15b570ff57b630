// Package tagging derives track metadata from a cue sheet and writes it to
// encoded files.
//
// MP3 output is tagged in place with ID3v2 frames. Ogg Vorbis and qaac output
// receive their tags as encoder arguments (see VorbisArgs and QaacArgs).
package tagging

import (
	"strconv"

	"cuesplit/internal/cuesheet"
)

// Tags is the metadata written for one track. Empty strings and zero numbers
// are omitted.
type Tags struct {
	Title      string
	Artist     string
	Album      string
	Year       string
	Composer   string
	Genre      string
	Track      int
	TrackCount int
}

// FromSheet collects the tags for track. Artist and album come from the sheet,
// year and genre from its REM DATE and REM GENRE comments.
func FromSheet(sheet *cuesheet.Sheet, track cuesheet.Track) Tags {
	tags := Tags{
		Title:    track.Title,
		Artist:   sheet.Performer,
		Album:    sheet.Title,
		Composer: track.SongWriter,
	}
	if date, ok := sheet.CommentValue("DATE"); ok {
		tags.Year = date
	}
	if genre, ok := sheet.CommentValue("GENRE"); ok {
		tags.Genre = genre
	}
	if track.Number > 0 {
		tags.Track = track.Number
		tags.TrackCount = sheet.TrackCount()
	}
	return tags
}

// TrackLabel renders the track position as "n/total", or "n" without a total.
func (t Tags) TrackLabel() string {
	if t.Track <= 0 {
		return ""
	}
	if t.TrackCount <= 0 {
		return strconv.Itoa(t.Track)
	}
	return strconv.Itoa(t.Track) + "/" + strconv.Itoa(t.TrackCount)
}

// VorbisArgs renders tags as oggenc options.
func VorbisArgs(t Tags) []string {
	var args []string
	args = appendOpt(args, "-t", t.Title)
	args = appendOpt(args, "-a", t.Artist)
	args = appendOpt(args, "-l", t.Album)
	args = appendOpt(args, "-d", t.Year)
	args = appendOpt(args, "-G", t.Genre)
	if t.Track > 0 {
		args = append(args, "-N", strconv.Itoa(t.Track))
	}
	if t.Composer != "" {
		args = append(args, "-c", "COMPOSER="+t.Composer)
	}
	if t.TrackCount > 0 && t.Track > 0 {
		args = append(args, "-c", "TRACKTOTAL="+strconv.Itoa(t.TrackCount))
	}
	return args
}

// QaacArgs renders tags as qaac options. A non-empty cover path embeds artwork.
func QaacArgs(t Tags, coverPath string) []string {
	var args []string
	args = appendOpt(args, "--title", t.Title)
	args = appendOpt(args, "--artist", t.Artist)
	args = appendOpt(args, "--album", t.Album)
	args = appendOpt(args, "--date", t.Year)
	args = appendOpt(args, "--genre", t.Genre)
	args = appendOpt(args, "--composer", t.Composer)
	args = appendOpt(args, "--track", t.TrackLabel())
	args = appendOpt(args, "--artwork", coverPath)
	return args
}

func appendOpt(args []string, flag, value string) []string {
	if value == "" {
		return args
	}
	return append(args, flag, value)
}
