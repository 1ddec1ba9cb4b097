package temporal

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Candidate is a calendar date recognized in a document and where it was found
type Candidate struct {
	Date  time.Time
	Start int
	End   int
}

type dateShape struct {
	re      *regexp.Regexp
	layouts []string
	squash  bool // collapse inner whitespace before parsing
}

var shapes = []dateShape{
	{re: regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), layouts: []string{"2006-01-02"}},
	{re: regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`), layouts: []string{"1/2/2006", "1/2/06"}},
	{
		re:      regexp.MustCompile(`\b[A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4}`),
		layouts: []string{"January 2, 2006", "Jan 2, 2006", "January 2 2006", "Jan 2 2006"},
		squash:  true,
	},
}

// FindDates returns every parseable date in text ordered by position.
// Substrings that look like dates but do not parse are skipped
func FindDates(text string) []Candidate {
	if text == "" {
		return nil
	}
	var out []Candidate
	for _, sh := range shapes {
		for _, loc := range sh.re.FindAllStringIndex(text, -1) {
			s := text[loc[0]:loc[1]]
			if sh.squash {
				s = strings.Join(strings.Fields(s), " ")
			}
			if d, ok := parseAny(s, sh.layouts); ok {
				out = append(out, Candidate{Date: d, Start: loc[0], End: loc[1]})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func parseAny(s string, layouts []string) (time.Time, bool) {
	for _, l := range layouts {
		if d, err := time.Parse(l, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Within keeps the candidates dated inside [ref-days, ref+days], both ends inclusive
func Within(cands []Candidate, ref time.Time, days int) []Candidate {
	lo := ref.AddDate(0, 0, -days)
	hi := ref.AddDate(0, 0, days)
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Date.Before(lo) || c.Date.After(hi) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Nearest returns the candidate whose midpoint is closest to the span [start,end).
// On equal distance the earlier candidate in the slice wins
func Nearest(cands []Candidate, start, end int) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	center2 := start + end // doubled midpoint keeps the arithmetic integral
	best, bestDist := 0, -1
	for i, c := range cands {
		dist := abs(c.Start + c.End - center2)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return cands[best], true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
