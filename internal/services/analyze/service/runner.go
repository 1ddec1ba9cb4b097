package service

import (
	"context"
	"fmt"
	"time"

	"riskscan/internal/core/report"
	perr "riskscan/internal/platform/errors"
	"riskscan/internal/platform/logger"
	"riskscan/internal/platform/metrics"
	ptime "riskscan/internal/platform/time"
	"riskscan/internal/services/analyze/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config for the batch runner
type Config struct {
	Workers    int
	Limit      int // highest filing number to analyze, 0 = all
	WindowDays int
	IncludeRaw bool
}

// Runner implements domain.RunnerPort
type Runner struct {
	Src     domain.FilingSource
	Eng     domain.EnginePort
	Metrics metrics.Recorder
	Cfg     Config
}

// seams for tests
var (
	now   = time.Now
	newID = uuid.NewString
)

// NewRunner constructs a batch runner
func NewRunner(src domain.FilingSource, eng domain.EnginePort, rec metrics.Recorder, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Runner{Src: src, Eng: eng, Metrics: rec, Cfg: cfg}
}

// RunAll analyzes every listed filing with bounded concurrency.
// Results keep listing order; a filing that fails becomes an error entry and the batch continues.
// Filings with neither sentences nor event groups are left out of Results but still counted
func (r *Runner) RunAll(ctx context.Context) (report.Report, error) {
	if r.Src == nil {
		return report.Report{}, perr.InvalidArgf("analyze: no filing source wired")
	}
	refs, err := r.Src.List(ctx)
	if err != nil {
		return report.Report{}, err
	}
	refs = r.limit(refs)

	runID := newID()
	ctx = logger.WithRun(ctx, runID, "")
	today := ptime.Day(now())

	log := logger.C(ctx)
	log.Info().Str("source", r.Src.Name()).Int("filings", len(refs)).Int("workers", r.Cfg.Workers).Msg("analyze run starting")

	out := make([]report.FilingReport, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Cfg.Workers)
	for i, ref := range refs {
		g.Go(func() error {
			// cancellation is honored between filings, never mid-scan
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.analyzeOne(gctx, ref, today)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Report{}, perr.Wrap(err, perr.ErrorCodeUnknown, "analyze run interrupted")
	}

	rep := report.Report{
		RunID:           runID,
		Source:          r.Src.Name(),
		GeneratedAt:     now().UTC(),
		FilingsAnalyzed: len(refs),
		Results:         make([]report.FilingReport, 0, len(out)),
	}
	for _, f := range out {
		if f.Empty() {
			continue
		}
		rep.Results = append(rep.Results, f)
	}
	log.Info().Int("filings_analyzed", rep.FilingsAnalyzed).Int("results", len(rep.Results)).Msg("analyze run done")
	return rep, nil
}

func (r *Runner) limit(refs []domain.FilingRef) []domain.FilingRef {
	if r.Cfg.Limit <= 0 {
		return refs
	}
	kept := refs[:0:0]
	for _, ref := range refs {
		if ref.Number <= r.Cfg.Limit {
			kept = append(kept, ref)
		}
	}
	return kept
}

// analyzeOne never fails the batch: load errors and panics become the filing's error entry
func (r *Runner) analyzeOne(ctx context.Context, ref domain.FilingRef, today time.Time) (fr report.FilingReport) {
	started := time.Now()
	log := logger.C(logger.WithRun(ctx, "", filingKey(ref)))

	defer func() {
		if v := recover(); v != nil {
			err := perr.PanicErrf("analyze filing %d: %v", ref.Number, v)
			log.Error().Err(err).Msg("filing analysis panicked")
			r.Metrics.FilingDone(metrics.StatusFailed, time.Since(started))
			fr = report.Failed(ref.Number, ref.ID, err)
		}
	}()

	f, err := r.Src.Load(ctx, ref)
	if err != nil {
		log.Error().Err(err).Str("path", ref.Path).Msg("filing load failed")
		r.Metrics.FilingDone(metrics.StatusFailed, time.Since(started))
		return report.Failed(ref.Number, ref.ID, err)
	}

	fr = r.Eng.AnalyzeFiling(f, domain.AnalyzeOptions{
		WindowDays: r.Cfg.WindowDays,
		IncludeRaw: r.Cfg.IncludeRaw,
	}, today)

	for _, g := range fr.Groups {
		r.Metrics.Occurrences(g.EventType, g.Count)
	}
	r.Metrics.DangerousSentences(len(fr.Sentences))

	status := metrics.StatusOK
	if fr.Empty() {
		status = metrics.StatusEmpty
	}
	r.Metrics.FilingDone(status, time.Since(started))
	log.Debug().Int("sentences", len(fr.Sentences)).Int("groups", len(fr.Groups)).Msg("filing analyzed")
	return fr
}

func filingKey(ref domain.FilingRef) string {
	if ref.ID != "" {
		return ref.ID
	}
	return fmt.Sprintf("#%d", ref.Number)
}
