package workflow

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"cuesplit/internal/cuesheet"
	"cuesplit/internal/fileutil"
	"cuesplit/internal/splitter"
	"cuesplit/internal/textutil"
)

// TrackFileName names an encoded track "<NN> - <title><ext>". NN is padded to
// the number of digits in trackCount.
func TrackFileName(track cuesheet.Track, trackCount int, ext string) string {
	width := len(strconv.Itoa(max(trackCount, 1)))
	title := textutil.SanitizeFileName(track.Title)
	if title == "" {
		title = fmt.Sprintf("Track %0*d", width, track.Number)
	}
	return fmt.Sprintf("%0*d - %s%s", width, track.Number, title, ext)
}

// OriginalsDirName is the directory holding copied originals: the lower-case
// source extension, or "original" when the source has none.
func OriginalsDirName(sheet *cuesheet.Sheet) string {
	if len(sheet.Files) == 0 {
		return "original"
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(sheet.Files[0].Name)), ".")
	if ext == "" {
		return "original"
	}
	return ext
}

// copyOriginals copies the cue sheet and its source audio into
// <outputDir>/<OriginalsDirName>, and the cover to <outputDir>/cover<ext>.
func copyOriginals(outputDir, cuePath string, sheet *cuesheet.Sheet, coverPath string) (string, error) {
	if coverPath != "" {
		dst := filepath.Join(outputDir, "cover"+strings.ToLower(filepath.Ext(coverPath)))
		if err := fileutil.CopyFile(coverPath, dst); err != nil {
			return "", fmt.Errorf("copy cover: %w", err)
		}
	}

	dir := filepath.Join(outputDir, OriginalsDirName(sheet))
	if _, err := fileutil.CopyInto(cuePath, dir); err != nil {
		return "", fmt.Errorf("copy cue sheet: %w", err)
	}
	cueDir := filepath.Dir(cuePath)
	for _, file := range sheet.Files {
		if _, err := fileutil.CopyInto(splitter.SourcePath(cueDir, file.Name), dir); err != nil {
			return "", fmt.Errorf("copy %s: %w", file.Name, err)
		}
	}
	return dir, nil
}
