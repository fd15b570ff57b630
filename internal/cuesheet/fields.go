package cuesheet

import (
	"fmt"
	"strconv"
	"strings"
)

// unquote trims surrounding spaces and strips one layer of double quotes.
func unquote(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, `"`)
	value = strings.TrimSuffix(value, `"`)
	return strings.TrimSpace(value)
}

func missing(field string) error {
	return &FormatError{Field: field, Message: "missing " + field}
}

func parseComment(l Line) (Comment, error) {
	if len(l.Tokens) < 2 {
		return Comment{}, missing("comment name")
	}
	if len(l.Tokens) < 3 {
		return Comment{}, missing("comment value")
	}
	return Comment{Name: l.Tokens[1], Value: unquote(l.rest(2))}, nil
}

func parseSingleValue(l Line) (string, error) {
	if len(l.Tokens) < 2 {
		return "", missing("value")
	}
	return unquote(l.rest(1)), nil
}

func parseFileHeader(l Line) (File, error) {
	if len(l.Tokens) < 3 {
		return File{}, missing("file name and type")
	}
	fileType := l.Tokens[len(l.Tokens)-1]
	body := l.rest(1)
	name := strings.TrimSpace(body[:len(body)-len(fileType)])
	return File{Name: unquote(name), Type: fileType}, nil
}

func parseTrackHeader(l Line) (Track, error) {
	if len(l.Tokens) < 3 {
		return Track{}, missing("track number and type")
	}
	number, err := strconv.Atoi(l.Tokens[1])
	if err != nil {
		return Track{}, &FormatError{Field: "TrackNum", Message: fmt.Sprintf("track number %q is not an integer", l.Tokens[1])}
	}
	return Track{Number: number, Type: l.Tokens[2], Indexes: []Index{}}, nil
}

func parseIndex(l Line) (Index, error) {
	if len(l.Tokens) < 3 {
		return Index{}, missing("index number and time")
	}
	number, err := strconv.ParseUint(l.Tokens[1], 10, 8)
	if err != nil || number > maxIndexNumber {
		return Index{}, &FormatError{
			Field:   "IndexNum",
			Message: fmt.Sprintf("index number %q must be between 0 and %d", l.Tokens[1], maxIndexNumber),
		}
	}
	t, err := ParseIndexTime(l.Tokens[len(l.Tokens)-1])
	if err != nil {
		return Index{}, err
	}
	return NewIndex(int(number), t)
}

// parseGap accepts the two-token PREGAP/POSTGAP form, which carries only a
// duration, as index number 0. Longer lines go through parseIndex.
func parseGap(l Line) (Index, error) {
	if len(l.Tokens) == 2 {
		t, err := ParseIndexTime(l.Tokens[1])
		if err != nil {
			return Index{}, err
		}
		return Index{Number: 0, Time: t}, nil
	}
	return parseIndex(l)
}
