package domain

import (
	"context"
	"time"

	"riskscan/internal/core/aggregate"
	"riskscan/internal/core/detector"
	"riskscan/internal/core/report"
	"riskscan/internal/core/temporal"
)

// FilingSource lists and loads filings from wherever the downloader left them
type FilingSource interface {
	// Name describes the source in reports (a directory, a ticker)
	Name() string
	// List returns refs in analysis order
	List(ctx context.Context) ([]FilingRef, error)
	// Load reads one filing with its metadata
	Load(ctx context.Context, ref FilingRef) (Filing, error)
}

// EnginePort is the pure extraction surface; safe for concurrent use
type EnginePort interface {
	DetectEvents(text string) []detector.Occurrence
	FindDangerousSentences(doc string) []string
	ResolveAndAggregate(text string, occs []detector.Occurrence, filingDate *time.Time, windowDays int, today time.Time) ([]temporal.Resolved, []aggregate.EventGroup)
	AnalyzeFiling(f Filing, opts AnalyzeOptions, today time.Time) report.FilingReport
}

// RunnerPort is the external port for the batch job
type RunnerPort interface {
	RunAll(ctx context.Context) (report.Report, error)
}

// Ports are dependencies injected into the analyze module
type Ports struct {
	Source FilingSource // required by RunAll only
}
