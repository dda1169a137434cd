package puzzle

import (
	"strings"
	"unicode"
)

// Normalize lower-cases text and strips everything that is not a letter,
// digit, underscore or whitespace. Whitespace runs are collapsed to one space.
func Normalize(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, text)
	return strings.Join(strings.Fields(cleaned), " ")
}

// Words splits normalized text into words.
func Words(normalized string) []string {
	return strings.Fields(normalized)
}
