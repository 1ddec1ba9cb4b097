// Package report shapes engine output into the per-filing JSON documents handed to presentation
package report

import (
	"time"

	"riskscan/internal/core/aggregate"
	"riskscan/internal/core/temporal"
	perr "riskscan/internal/platform/errors"
	ptime "riskscan/internal/platform/time"
)

// NA is rendered for unknown filing dates and form types
const NA = "N/A"

// OccurrenceView is one resolved occurrence as it appears in reports
type OccurrenceView struct {
	EventType       string  `json:"event_type"`
	MatchText       string  `json:"match_text"`
	MatchSpan       [2]int  `json:"match_span"`
	PatternSource   string  `json:"pattern_source"`
	TStarDays       *int    `json:"T_star_days,omitempty"`
	EventStartedOn  *string `json:"event_started_on"`
	EventEndsOn     *string `json:"event_ends_on"`
	DaysRemaining   *int    `json:"days_remaining"`
	TimeRelation    string  `json:"time_relation"`
	TriggerSentence *string `json:"trigger_sentence"`
}

// EventGroupView is one event type roll-up
type EventGroupView struct {
	EventType           string           `json:"event_type"`
	EventNature         string           `json:"event_nature,omitempty"`
	LikelyTriggers      []string         `json:"likely_triggers"`
	Description         string           `json:"description,omitempty"`
	ConfidenceInterval  any              `json:"confidence_interval,omitempty"`
	Count               int              `json:"count"`
	RepresentativeMatch string           `json:"representative_match"`
	TStarDays           *int             `json:"T_star_days,omitempty"`
	EventStartedOn      *string          `json:"event_started_on"`
	EventEndsOn         *string          `json:"event_ends_on"`
	DaysRemaining       *int             `json:"days_remaining"`
	TimeRelation        string           `json:"time_relation"`
	Subevents           []OccurrenceView `json:"subevents,omitempty"`
}

// FilingReport is the per-filing result. A failed filing carries only FilingNumber and Error
type FilingReport struct {
	FilingNumber int              `json:"filing_number"`
	FilingID     string           `json:"filing_id,omitempty"`
	FilingDate   string           `json:"filing_date,omitempty"`
	FormType     string           `json:"form_type,omitempty"`
	DaysAgo      *int             `json:"days_ago,omitempty"`
	Sentences    []string         `json:"sentences,omitempty"`
	Groups       []EventGroupView `json:"detected_event_categories,omitempty"`
	Occurrences  []OccurrenceView `json:"detected_events,omitempty"`
	Error        *perr.Wire       `json:"error,omitempty"`
}

// Empty reports whether the filing produced neither sentences nor event groups
func (f FilingReport) Empty() bool {
	return f.Error == nil && len(f.Sentences) == 0 && len(f.Groups) == 0
}

// Failed builds the error entry for a filing that could not be analyzed
func Failed(number int, id string, err error) FilingReport {
	w := perr.WireFrom(err)
	return FilingReport{FilingNumber: number, FilingID: id, Error: &w}
}

// Report is one batch run
type Report struct {
	RunID           string         `json:"run_id"`
	Source          string         `json:"source"`
	GeneratedAt     time.Time      `json:"generated_at"`
	FilingsAnalyzed int            `json:"filings_analyzed"`
	Results         []FilingReport `json:"results"`
}

// Occurrence renders a resolved occurrence
func Occurrence(r temporal.Resolved) OccurrenceView {
	return OccurrenceView{
		EventType:       r.EventType,
		MatchText:       r.Text,
		MatchSpan:       [2]int{r.Start, r.End},
		PatternSource:   r.Origin.String(),
		TStarDays:       r.Def.TStarDays,
		EventStartedOn:  ptime.Format(r.StartedOn),
		EventEndsOn:     ptime.Format(r.EndsOn),
		DaysRemaining:   r.DaysRemaining,
		TimeRelation:    string(r.Relation),
		TriggerSentence: r.TriggerSentence,
	}
}

// Occurrences renders rs in order
func Occurrences(rs []temporal.Resolved) []OccurrenceView {
	if len(rs) == 0 {
		return nil
	}
	out := make([]OccurrenceView, len(rs))
	for i, r := range rs {
		out[i] = Occurrence(r)
	}
	return out
}

// Group renders an event group; members are listed only when withMembers is set
func Group(g aggregate.EventGroup, withMembers bool) EventGroupView {
	triggers := g.LikelyTriggers
	if triggers == nil {
		triggers = []string{}
	}
	v := EventGroupView{
		EventType:           g.EventType,
		EventNature:         g.EventNature,
		LikelyTriggers:      triggers,
		Description:         g.Description,
		ConfidenceInterval:  g.ConfidenceInterval,
		Count:               g.Count(),
		RepresentativeMatch: g.Representative.Text,
		TStarDays:           g.TStarDays,
		EventStartedOn:      ptime.Format(g.StartedOn),
		EventEndsOn:         ptime.Format(g.EndsOn),
		DaysRemaining:       g.DaysRemaining,
		TimeRelation:        string(g.Relation),
	}
	if withMembers {
		v.Subevents = Occurrences(g.Members)
	}
	return v
}

// Groups renders gs in order
func Groups(gs []aggregate.EventGroup, withMembers bool) []EventGroupView {
	if len(gs) == 0 {
		return nil
	}
	out := make([]EventGroupView, len(gs))
	for i, g := range gs {
		out[i] = Group(g, withMembers)
	}
	return out
}
