package cuesheet

import (
	"strings"
	"unicode"
)

// Line is one tokenized cue sheet line. Quotes are left in Tokens; field
// parsers strip them.
type Line struct {
	// Keyword is the first token, uppercased.
	Keyword string
	Command Command
	// Text is the whitespace-trimmed source line.
	Text   string
	Tokens []string
}

// Tokenize splits a line on runs of whitespace. The first token, uppercased,
// becomes the keyword. An empty or all-whitespace line is a FormatError.
func Tokenize(text string) (Line, error) {
	trimmed := strings.TrimSpace(text)
	tokens := strings.Fields(trimmed)
	if len(tokens) == 0 {
		return Line{}, &FormatError{Message: "empty line"}
	}
	keyword := strings.ToUpper(tokens[0])
	return Line{
		Keyword: keyword,
		Command: lookupCommand(keyword),
		Text:    trimmed,
		Tokens:  tokens,
	}, nil
}

// rest returns the text that follows the first n tokens, trimmed.
func (l Line) rest(n int) string {
	s := l.Text
	for i := 0; i < n; i++ {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			return ""
		}
		s = s[end:]
	}
	return strings.TrimSpace(s)
}

func tokenizeAll(raw []string) ([]Line, error) {
	lines := make([]Line, 0, len(raw))
	for _, text := range raw {
		if strings.TrimSpace(text) == "" {
			continue
		}
		line, err := Tokenize(text)
		if err != nil {
			return nil, atLine(err, len(lines)+1, "")
		}
		lines = append(lines, line)
	}
	return lines, nil
}
