// Package temporal anchors detected occurrences in calendar time.
// It picks the date reference nearest to each occurrence, derives the expected
// end from the event type duration and classifies the event against today
package temporal

import (
	"time"

	"riskscan/internal/core/detector"
	ptime "riskscan/internal/platform/time"
)

// Relation classifies an event against today
type Relation string

const (
	RelationPast    Relation = "past"
	RelationOngoing Relation = "ongoing"
	RelationFuture  Relation = "future"
	RelationUnknown Relation = "unknown"
)

// Rank orders relations for group roll-up: future > ongoing > past > unknown
func (r Relation) Rank() int {
	switch r {
	case RelationFuture:
		return 3
	case RelationOngoing:
		return 2
	case RelationPast:
		return 1
	default:
		return 0
	}
}

// Resolved is an occurrence anchored in time. Nil pointers are absent values
type Resolved struct {
	detector.Occurrence

	StartedOn       *time.Time
	EndsOn          *time.Time
	DaysRemaining   *int
	Relation        Relation
	TriggerSentence *string
}

// Document caches the date candidates of one text so many occurrences can be resolved against it
type Document struct {
	text  string
	dates []Candidate
}

// NewDocument scans text for date candidates once
func NewDocument(text string) *Document {
	return &Document{text: text, dates: FindDates(text)}
}

// Text returns the scanned text
func (d *Document) Text() string { return d.text }

// Dates returns the recognized date candidates in document order
func (d *Document) Dates() []Candidate { return d.dates }

// StartFor picks the start date for the span [start,end): the nearest candidate inside
// the filing window, else the filing date itself, else nil
func (d *Document) StartFor(start, end int, filingDate *time.Time, windowDays int) *time.Time {
	cands := d.dates
	if filingDate != nil {
		cands = Within(cands, *filingDate, windowDays)
	}
	if c, ok := Nearest(cands, start, end); ok {
		return ptime.Ptr(c.Date)
	}
	if filingDate != nil {
		fd := ptime.Day(*filingDate)
		return &fd
	}
	return nil
}

// Resolve anchors o in time. A span outside the text leaves every derived field absent
func (d *Document) Resolve(o detector.Occurrence, filingDate *time.Time, windowDays int, today time.Time) Resolved {
	r := Resolved{Occurrence: o, Relation: RelationUnknown}
	if o.Start < 0 || o.End > len(d.text) || o.Start >= o.End {
		return r
	}
	r.StartedOn = d.StartFor(o.Start, o.End, filingDate, windowDays)
	r.EndsOn, r.DaysRemaining, r.Relation = Derive(r.StartedOn, o.Def.TStarDays, today)
	r.TriggerSentence = TriggerSentence(d.text, o.Start, o.End, SentenceWindow)
	return r
}

// ResolveAll resolves every occurrence against the document, keeping input order
func (d *Document) ResolveAll(occ []detector.Occurrence, filingDate *time.Time, windowDays int, today time.Time) []Resolved {
	out := make([]Resolved, 0, len(occ))
	for _, o := range occ {
		out = append(out, d.Resolve(o, filingDate, windowDays, today))
	}
	return out
}

// Resolve is the single-shot form of Document.Resolve
func Resolve(o detector.Occurrence, text string, filingDate *time.Time, windowDays int, today time.Time) Resolved {
	return NewDocument(text).Resolve(o, filingDate, windowDays, today)
}

// Derive computes end date, days remaining and relation from a start date and duration.
// Without a start the relation is unknown; without a duration the end stays absent
func Derive(start *time.Time, tStarDays *int, today time.Time) (*time.Time, *int, Relation) {
	if start == nil {
		return nil, nil, RelationUnknown
	}
	today = ptime.Day(today)
	var end *time.Time
	var days *int
	if tStarDays != nil {
		e := ptime.AddDays(*start, *tStarDays)
		n := ptime.DaysBetween(today, e)
		end, days = &e, &n
	}
	return end, days, Classify(*start, end, today)
}

// Classify applies past/future/ongoing to a known start and optional end
func Classify(start time.Time, end *time.Time, today time.Time) Relation {
	today = ptime.Day(today)
	switch {
	case end != nil && end.Before(today):
		return RelationPast
	case start.After(today):
		return RelationFuture
	default:
		return RelationOngoing
	}
}

// DaysUntil returns end - today in days, nil when end is absent
func DaysUntil(end *time.Time, today time.Time) *int {
	if end == nil {
		return nil
	}
	n := ptime.DaysBetween(today, *end)
	return &n
}
