// Package service implements the analyze service
package service

import (
	"time"

	"riskscan/internal/core/aggregate"
	"riskscan/internal/core/detector"
	"riskscan/internal/core/matcher"
	"riskscan/internal/core/normalize"
	"riskscan/internal/core/report"
	"riskscan/internal/core/risk"
	"riskscan/internal/core/temporal"
	pstrings "riskscan/internal/platform/strings"
	ptime "riskscan/internal/platform/time"
	"riskscan/internal/services/analyze/domain"
)

// Engine implements domain.EnginePort over a compiled table and a loaded lexicon.
// Both are immutable after construction, so one Engine serves every worker
type Engine struct {
	det *detector.Detector
	ext *risk.Extractor
}

// NewEngine wires a detector and a sentence extractor
func NewEngine(t *matcher.Table, x *risk.Extractor) *Engine {
	return &Engine{det: detector.New(t), ext: x}
}

// DetectEvents returns non-overlapping occurrences in document order
func (e *Engine) DetectEvents(text string) []detector.Occurrence {
	return e.det.Scan(text)
}

// FindDangerousSentences scrubs filing residue and returns ranked, display-ready sentences
func (e *Engine) FindDangerousSentences(doc string) []string {
	return e.ext.Texts(normalize.Scrub(doc))
}

// ResolveAndAggregate anchors occs (spans into text) in time and folds them into groups
func (e *Engine) ResolveAndAggregate(text string, occs []detector.Occurrence, filingDate *time.Time, windowDays int, today time.Time) ([]temporal.Resolved, []aggregate.EventGroup) {
	if len(occs) == 0 {
		return nil, nil
	}
	rs := temporal.NewDocument(text).ResolveAll(occs, filingDate, windowDays, today)
	return rs, aggregate.Aggregate(rs, today)
}

// AnalyzeFiling runs the whole pipeline on one filing and shapes the report entry
func (e *Engine) AnalyzeFiling(f domain.Filing, opts domain.AnalyzeOptions, today time.Time) report.FilingReport {
	text := normalize.Clean(f.Text)

	occs := e.DetectEvents(text)
	rs, groups := e.ResolveAndAggregate(text, occs, f.FilingDate, opts.WindowDays, today)

	out := report.FilingReport{
		FilingNumber: f.Number,
		FilingID:     f.ID,
		FilingDate:   pstrings.Or(f.RawDate, report.NA),
		FormType:     pstrings.Or(f.FormType, report.NA),
		Sentences:    e.FindDangerousSentences(text),
		Groups:       report.Groups(groups, opts.IncludeRaw),
	}
	if f.FilingDate != nil {
		n := ptime.DaysBetween(*f.FilingDate, today)
		out.DaysAgo = &n
	}
	if opts.IncludeRaw {
		out.Occurrences = report.Occurrences(rs)
	}
	return out
}
