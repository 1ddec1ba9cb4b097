// Package risk ranks the sentences of a filing that carry material risk language
package risk

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"riskscan/internal/core/lexicon"
)

// TruncationMarker is appended to sentences hard-cut for display
const TruncationMarker = " [...]"

// Sentence is a ranked, display-ready dangerous sentence
type Sentence struct {
	Text     string   `json:"text"`
	Score    int      `json:"score"`
	Critical []string `json:"critical,omitempty"`
	High     []string `json:"high,omitempty"`
}

// Extractor scores sentences against an immutable lexicon; safe for concurrent use
type Extractor struct {
	lex *lexicon.Lexicon
	th  Thresholds
}

// New returns an Extractor. Thresholds are expected to be validated by the caller
func New(lex *lexicon.Lexicon, th Thresholds) *Extractor {
	return &Extractor{lex: lex, th: th}
}

// Thresholds returns the calibration in use
func (x *Extractor) Thresholds() Thresholds { return x.th }

// Extract returns up to TopN dangerous sentences of cleaned text, highest score first.
// Equal scores keep their order of appearance
func (x *Extractor) Extract(text string) []Sentence {
	var out []Sentence
	seen := map[string]struct{}{}
	for _, s := range Segment(text, x.th.MinWords, x.th.MaxWords) {
		if x.IsBoilerplate(s) {
			continue
		}
		sc, ok := x.Score(s)
		if !ok || sc.Score < x.th.MinScore {
			continue
		}
		fp := Fingerprint(s)
		if len(fp) < x.th.MinFingerprint {
			continue
		}
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		sc.Text = Truncate(s, x.th.DisplayLimit)
		out = append(out, sc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > x.th.TopN {
		out = out[:x.th.TopN]
	}
	return out
}

// Texts returns the display strings of Extract
func (x *Extractor) Texts(text string) []string {
	ss := x.Extract(text)
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Text
	}
	return out
}

// Score weighs the distinct critical and high-priority phrases of s.
// ok is false unless s holds at least one phrase and one risk context word
func (x *Extractor) Score(s string) (Sentence, bool) {
	lower := strings.ToLower(s)
	crit := x.lex.Critical.Found(lower)
	high := x.lex.High.Found(lower)
	if len(crit) == 0 && len(high) == 0 {
		return Sentence{}, false
	}
	if !x.lex.HasContext(lower) {
		return Sentence{}, false
	}
	return Sentence{
		Text:     s,
		Score:    len(crit)*x.th.CriticalWeight + len(high)*x.th.HighWeight,
		Critical: crit,
		High:     high,
	}, true
}

// IsBoilerplate reports filler: an excluded phrase, too many long digit runs,
// or (past DigitRatioMinLen characters) too high a share of digits
func (x *Extractor) IsBoilerplate(s string) bool {
	if x.lex.Boilerplate.Any(strings.ToLower(s)) {
		return true
	}
	runs, run, digits, n := 0, 0, 0, 0
	for _, r := range s {
		n++
		if unicode.IsDigit(r) {
			digits++
			run++
			if run == x.th.DigitRunLen {
				runs++
			}
			continue
		}
		run = 0
	}
	if runs >= x.th.MaxDigitRuns {
		return true
	}
	return n > x.th.DigitRatioMinLen && float64(digits)/float64(n) > x.th.DigitRatio
}

// Fingerprint keeps only the ASCII letters of lowercased s
func Fingerprint(s string) string {
	lower := strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		if c := lower[i]; 'a' <= c && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Truncate shortens s to at most limit characters for display, cutting after the
// last ". " inside the limit when there is one, else hard-cutting with TruncationMarker
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	cut := 0
	for i := 0; i < limit; i++ {
		_, sz := utf8.DecodeRuneInString(s[cut:])
		cut += sz
	}
	head := s[:cut]
	if i := strings.LastIndex(head, ". "); i >= 0 {
		return head[:i+1]
	}
	return head + TruncationMarker
}
