package normalize

import (
	"regexp"
	"strings"
)

var (
	reTag        = regexp.MustCompile(`<[^>]*>`)
	reTagTail    = regexp.MustCompile(`["']?\s*>\s*</\w+>`)
	reParaTail   = regexp.MustCompile(`["'>]+\s*</p>`)
	reMargin     = regexp.MustCompile(`margin:\s*\d+pt\s*\d+["']?\)`)
	reNumEntity  = regexp.MustCompile(`&#\d+;`)
	reListMarker = regexp.MustCompile(`\b[a-z]\)\s*`)
	reListJoin   = regexp.MustCompile(`([a-z])\)\s*([a-z])`)
	reDigitUpper = regexp.MustCompile(`(\d)([A-Z])`)
	reLowerDigit = regexp.MustCompile(`([a-z])(\d)`)

	reExhibit    = regexp.MustCompile(`(?i)\n\s*EXHIBIT\s+\S+`)
	reExhibitEnd = regexp.MustCompile(`(?i)\n\s*(?:EXHIBIT|SIGNATURE|ANNEX)`)
	reSignature  = regexp.MustCompile(`(?is)\n\s*SIGNATURE\s+.*`)
	reIndex      = regexp.MustCompile(`(?is)\n\s*INDEX TO EXHIBITS.*`)
	reConnective = regexp.MustCompile(`(?i)pursuant to the requirements|in accordance with the`)
)

// entity decoding runs in this order, so "&amp;lt;" ends up as "<"
var entities = [][2]string{
	{"&nbsp;", " "},
	{"&quot;", `"`},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
}

// Scrub strips filing residue that survives markup extraction and returns one flat line of prose
// Input should keep its line breaks (Clean does), section removal keys on them
func Scrub(s string) string {
	if s == "" {
		return ""
	}
	s = reTag.ReplaceAllString(s, "")
	s = reTagTail.ReplaceAllString(s, "")
	s = reParaTail.ReplaceAllString(s, "")
	s = reMargin.ReplaceAllString(s, "")

	for _, e := range entities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	s = reNumEntity.ReplaceAllString(s, "")

	s = reListMarker.ReplaceAllString(s, "")
	s = reListJoin.ReplaceAllString(s, "${1}${2}")
	s = reDigitUpper.ReplaceAllString(s, "${1} ${2}")
	s = reLowerDigit.ReplaceAllString(s, "${1} ${2}")

	s = dropExhibits(s)
	s = reSignature.ReplaceAllString(s, "")
	s = reIndex.ReplaceAllString(s, "")
	s = reConnective.ReplaceAllString(s, "")

	return Flatten(s)
}

// dropExhibits removes every "EXHIBIT <id>" section up to the next exhibit, signature or annex
// heading, or to the end of the text when none follows
func dropExhibits(s string) string {
	var b strings.Builder
	for {
		loc := reExhibit.FindStringIndex(s)
		if loc == nil {
			break
		}
		b.WriteString(s[:loc[0]])
		rest := s[loc[1]:]
		end := reExhibitEnd.FindStringIndex(rest)
		if end == nil {
			s = ""
			break
		}
		s = rest[end[0]:]
	}
	if b.Len() == 0 {
		return s
	}
	b.WriteString(s)
	return b.String()
}
