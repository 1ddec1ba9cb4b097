// Package metrics holds the prometheus collectors recorded during an analysis run
// Nothing is served; a run can dump its registry in the textfile collector format
package metrics

import (
	"time"

	perr "riskscan/internal/platform/errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "riskscan"

// Filing outcome labels
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusEmpty  = "empty"
)

// Recorder is the instrumentation surface the analysis runner writes to
type Recorder interface {
	FilingDone(status string, took time.Duration)
	Occurrences(eventType string, n int)
	DangerousSentences(n int)
}

// Set groups the run collectors on a private registry
type Set struct {
	Registry *prometheus.Registry

	filings     *prometheus.CounterVec
	occurrences *prometheus.CounterVec
	sentences   prometheus.Counter
	duration    prometheus.Histogram
}

// New builds a Set on a fresh registry
func New() *Set {
	s := &Set{Registry: prometheus.NewRegistry()}
	s.filings = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "filings_total",
		Help:      "Filings analyzed, by outcome",
	}, []string{"status"})
	s.occurrences = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_occurrences_total",
		Help:      "Non-overlapping event occurrences detected, by event type",
	}, []string{"event_type"})
	s.sentences = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dangerous_sentences_total",
		Help:      "Ranked dangerous sentences emitted",
	})
	s.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "filing_duration_seconds",
		Help:      "Time spent analyzing one filing",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	})
	s.Registry.MustRegister(s.filings, s.occurrences, s.sentences, s.duration)
	return s
}

// FilingDone counts one finished filing and observes its duration
func (s *Set) FilingDone(status string, took time.Duration) {
	s.filings.WithLabelValues(status).Inc()
	s.duration.Observe(took.Seconds())
}

// Occurrences adds n detected occurrences for eventType
func (s *Set) Occurrences(eventType string, n int) {
	if n <= 0 {
		return
	}
	s.occurrences.WithLabelValues(eventType).Add(float64(n))
}

// DangerousSentences adds n emitted sentences
func (s *Set) DangerousSentences(n int) {
	if n <= 0 {
		return
	}
	s.sentences.Add(float64(n))
}

// WriteTextfile writes the registry to path in the node_exporter textfile format
func (s *Set) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, s.Registry); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write metrics textfile %s", path)
	}
	return nil
}

// Nop discards all observations
type Nop struct{}

// FilingDone implements Recorder
func (Nop) FilingDone(string, time.Duration) {}

// Occurrences implements Recorder
func (Nop) Occurrences(string, int) {}

// DangerousSentences implements Recorder
func (Nop) DangerousSentences(int) {}
