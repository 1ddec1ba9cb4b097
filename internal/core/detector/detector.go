// Package detector finds event occurrences in cleaned filing text and resolves overlaps
package detector

import (
	"sort"

	"riskscan/internal/core/catalog"
	"riskscan/internal/core/matcher"
)

// Occurrence spans are [Start,End) byte offsets into the scanned text
type Occurrence struct {
	EventType string             `json:"event_type"`
	Start     int                `json:"start"`
	End       int                `json:"end"`
	Text      string             `json:"match_text"`
	Origin    matcher.Origin     `json:"pattern_source"`
	Def       catalog.Definition `json:"-"`
}

// Len returns the span length in bytes
func (o Occurrence) Len() int { return o.End - o.Start }

// Overlaps reports whether the two spans share at least one byte
func (o Occurrence) Overlaps(p Occurrence) bool {
	return !(o.End <= p.Start || o.Start >= p.End)
}

// Options controls detector behavior
type Options struct {
	// MaxRawMatches caps raw matches collected per matcher (0 = no cap)
	MaxRawMatches int
}

// Detector scans text against a compiled table; safe for concurrent use
type Detector struct {
	t    *matcher.Table
	opts Options
}

// New creates a Detector with default options
func New(t *matcher.Table) *Detector {
	return NewWithOptions(t, Options{})
}

// NewWithOptions creates a Detector with custom options
func NewWithOptions(t *matcher.Table, opts Options) *Detector {
	return &Detector{t: t, opts: opts}
}

// Table returns the compiled table the detector scans with
func (d *Detector) Table() *matcher.Table { return d.t }

// Scan returns the non-overlapping occurrences in text ordered by start
func (d *Detector) Scan(text string) []Occurrence {
	return Resolve(d.Raw(text))
}

// Raw collects every match of every matcher, overlaps included.
// Order is event type id, then matcher, then position
func (d *Detector) Raw(text string) []Occurrence {
	var raw []Occurrence
	if text == "" || d.t == nil {
		return raw
	}
	n := -1
	if d.opts.MaxRawMatches > 0 {
		n = d.opts.MaxRawMatches
	}
	d.t.Each(func(id string, e *matcher.Entry) {
		for _, m := range e.Matchers {
			for _, loc := range m.Re.FindAllStringIndex(text, n) {
				start, end := loc[0], loc[1]
				if start >= end {
					continue // empty matches carry no span
				}
				raw = append(raw, Occurrence{
					EventType: id,
					Start:     start,
					End:       end,
					Text:      text[start:end],
					Origin:    m.Origin,
					Def:       e.Def,
				})
			}
		}
	})
	return raw
}

// Resolve keeps the longest matches greedily, explicit before keyword on equal length,
// dropping anything that overlaps a kept span. The result is ordered by start
func Resolve(raw []Occurrence) []Occurrence {
	if len(raw) == 0 {
		return nil
	}
	cand := make([]Occurrence, len(raw))
	copy(cand, raw)
	sort.SliceStable(cand, func(i, j int) bool {
		li, lj := cand[i].Len(), cand[j].Len()
		if li != lj {
			return li > lj
		}
		return cand[i].Origin.Priority() < cand[j].Origin.Priority()
	})

	var occ spanSet
	kept := make([]Occurrence, 0, len(cand))
	for _, o := range cand {
		if occ.claim(o.Start, o.End) {
			kept = append(kept, o)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}
