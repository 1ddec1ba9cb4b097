package lexicon

import (
	"unicode"
	"unicode/utf8"
)

// isWord reports whether r belongs to a word: letters, numbers, combining marks (Mn)
// and connector punctuation (Pc, e.g. underscore)
func isWord(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.In(r, unicode.Mn, unicode.Pc)
}

// Words splits s into maximal runs of word runes
func Words(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if isWord(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
