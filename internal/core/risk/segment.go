package risk

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	holdProvided        = "~~PH~~"
	holdNotwithstanding = "~~NW~~"
)

var (
	reProvided        = regexp.MustCompile(`(?i)provided\s*,?\s+however`)
	reNotwithstanding = regexp.MustCompile(`(?i)notwithstanding`)
	reClause          = regexp.MustCompile(`[.;]\s+`)
)

// Segment splits text into sentences of at least minWords words.
// Sentences over maxWords are split again on internal periods and semicolons.
// "provided, however" and "notwithstanding" never start a new sentence
func Segment(text string, minWords, maxWords int) []string {
	text = reProvided.ReplaceAllLiteralString(text, holdProvided)
	text = reNotwithstanding.ReplaceAllLiteralString(text, holdNotwithstanding)

	var out []string
	for _, s := range splitSentences(text) {
		s = strings.TrimSpace(s)
		n := len(strings.Fields(s))
		if s == "" || n < minWords {
			continue
		}
		if n <= maxWords {
			out = append(out, s)
			continue
		}
		for _, p := range reClause.Split(s, -1) {
			p = strings.TrimSpace(p)
			if p != "" && len(strings.Fields(p)) >= minWords {
				out = append(out, p)
			}
		}
	}
	for i, s := range out {
		s = strings.ReplaceAll(s, holdProvided, "provided, however")
		out[i] = strings.ReplaceAll(s, holdNotwithstanding, "notwithstanding")
	}
	return out
}

// splitSentences cuts after ., ! or ? when a whitespace run follows and an
// upper-case ASCII letter comes right after it. The whitespace is dropped
func splitSentences(text string) []string {
	var out []string
	last := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
		default:
			continue
		}
		j := i + 1
		k := j
		for k < len(text) {
			r, sz := utf8.DecodeRuneInString(text[k:])
			if !unicode.IsSpace(r) {
				break
			}
			k += sz
		}
		if k > j && k < len(text) && text[k] >= 'A' && text[k] <= 'Z' {
			out = append(out, text[last:j])
			last = k
			i = k - 1
		}
	}
	return append(out, text[last:])
}
