package workflow

import (
	"cuesplit/internal/cuesheet"
	"cuesplit/internal/textutil"
)

// ApplyTitleCase title-cases the performer, songwriter, and title of the sheet
// and of every track. Unset values stay unset.
func ApplyTitleCase(sheet *cuesheet.Sheet) {
	if sheet == nil {
		return
	}
	sheet.Performer = textutil.TitleCase(sheet.Performer)
	sheet.SongWriter = textutil.TitleCase(sheet.SongWriter)
	sheet.Title = textutil.TitleCase(sheet.Title)
	for i := range sheet.Files {
		tracks := sheet.Files[i].Tracks
		for j := range tracks {
			tracks[j].Performer = textutil.TitleCase(tracks[j].Performer)
			tracks[j].SongWriter = textutil.TitleCase(tracks[j].SongWriter)
			tracks[j].Title = textutil.TitleCase(tracks[j].Title)
		}
	}
}
