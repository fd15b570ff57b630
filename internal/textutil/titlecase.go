package textutil

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// smallWords stay lowercase in the middle of a title.
var smallWords = []string{
	"a", "an", "and", "as", "at", "but", "by", "de",
	"et", "for", "from", "in", "into", "le", "nor", "of", "off", "on", "onto", "or", "so", "than", "the", "to",
	"upon", "von", "with",
}

// commonVerbs make a preceding "to" part of an infinitive, which is capitalized.
var commonVerbs = []string{
	"add", "allow", "appear", "ask", "be", "become", "begin", "believe",
	"bring", "build", "buy", "call", "can", "change", "come", "consider", "continue", "could", "create", "cut",
	"die", "do", "expect", "fall", "feel", "find", "follow", "get", "give", "go", "grow", "happen", "have",
	"hear", "help", "hold", "include", "keep", "kill", "know", "lead", "learn", "leave", "let", "like", "live",
	"look", "lose", "love", "make", "may", "mean", "meet", "might", "move", "must", "need", "offer", "open",
	"pay", "play", "provide", "put", "reach", "read", "remain", "remember", "run", "say", "see", "seem", "send",
	"serve", "set", "should", "show", "sit", "speak", "spend", "stand", "start", "stay", "stop", "take", "talk",
	"tell", "think", "try", "turn", "understand", "use", "wait", "walk", "want", "watch", "will", "win", "work",
	"would", "write",
}

// romanLookalikes are words spelled only with numeral letters that are not numerals.
var romanLookalikes = []string{
	"i'll", "i'm", "i'd", "mild", "dim", "lid", "mid", "mil", "mix",
	"vim", "id", "li", "mi",
}

var romanNumeral = regexp.MustCompile(`(?i)^M*(C[MD]|D?C*)(X[CL]|L?X*)(I[XV]|V?I*)$`)

// TitleCase capitalizes each space-separated word of text. Small words
// (articles, conjunctions, prepositions) stay lowercase except at the start,
// at the end, or after a word ending in punctuation. Roman numerals are
// uppercased. Blank input is returned unchanged.
func TitleCase(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	words := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool { return r == ' ' })

	out := make([]string, len(words))
	for i, raw := range words {
		var prev, next string
		if i > 0 {
			prev = words[i-1]
		}
		if i+1 < len(words) {
			next = words[i+1]
		}
		word := upperFirstLetter(lowerCaser.String(raw))
		word = lowerSmallWord(word, prev, next)
		word = upperInfinitiveTo(word, next)
		word = upperRomanNumeral(word)
		out[i] = word
	}
	return strings.Join(out, " ")
}

func upperFirstLetter(word string) string {
	for i, r := range word {
		if unicode.IsPunct(r) {
			continue
		}
		end := i + len(string(r))
		return word[:i] + upperCaser.String(word[i:end]) + word[end:]
	}
	return word
}

func lowerSmallWord(word, prev, next string) string {
	if !containsFold(smallWords, word) {
		return word
	}
	if strings.TrimSpace(prev) == "" || endsWithPunct(prev) {
		return word
	}
	if strings.TrimSpace(next) == "" {
		return word
	}
	return lowerCaser.String(word)
}

func upperInfinitiveTo(word, next string) string {
	if !strings.EqualFold(word, "to") || strings.TrimSpace(next) == "" {
		return word
	}
	if containsFold(commonVerbs, next) {
		return upperFirstLetter(word)
	}
	return word
}

func upperRomanNumeral(word string) string {
	if strings.TrimSpace(word) == "" || containsFold(romanLookalikes, word) {
		return word
	}
	if !strings.ContainsFunc(word, unicode.IsPunct) || !startsOrEndsWithPunct(word) {
		if isRomanNumeral(word) {
			return upperCaser.String(word)
		}
		return word
	}

	bare := strings.TrimFunc(word, unicode.IsPunct)
	if bare == "" {
		return word
	}
	start := strings.Index(word, bare)
	if isRomanNumeral(bare) {
		return word[:start] + upperCaser.String(bare) + word[start+len(bare):]
	}
	return word
}

func isRomanNumeral(word string) bool {
	return word != "" && romanNumeral.MatchString(word)
}

func containsFold(list []string, word string) bool {
	return slices.ContainsFunc(list, func(s string) bool { return strings.EqualFold(s, word) })
}

func endsWithPunct(word string) bool {
	runes := []rune(word)
	return len(runes) > 0 && unicode.IsPunct(runes[len(runes)-1])
}

func startsOrEndsWithPunct(word string) bool {
	runes := []rune(word)
	return len(runes) > 0 && (unicode.IsPunct(runes[0]) || unicode.IsPunct(runes[len(runes)-1]))
}
