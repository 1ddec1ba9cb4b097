// Package normalize prepares filing text for matching and scoring
// Clean pipeline order
// 1 Sanitize drop controls and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Width fold fullwidth to ASCII
// 4 Remove format chars (zero-widths, BOM, soft hyphen)
// 5 Collapse whitespace runs, keeping one newline where a run had one, and trim
// Case and accents are preserved; matching is case-insensitive and offsets index the cleaned text
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			width.Fold,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Clean returns the canonical text form used by detection and resolution
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return collapseSpaces(ns)
}

// collapseSpaces converts whitespace runs to a single ASCII space, but preserves line breaks.
// Runs that contain any newline are collapsed to a single newline. Edges are trimmed
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS, sawNL := false, false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		if inWS && b.Len() > 0 {
			if sawNL {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		inWS, sawNL = false, false
		b.WriteRune(r)
	}
	return b.String()
}

// Flatten collapses every whitespace run, newlines included, to one space and trims
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
