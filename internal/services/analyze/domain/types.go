// Package domain defines the core types and interfaces for the analyze service
package domain

import "time"

// FilingRef identifies one filing in a source without loading it
type FilingRef struct {
	Number int    // 1-based position in the source listing
	ID     string // accession number when known
	Path   string // primary document
}

// Filing is a loaded filing ready for analysis
type Filing struct {
	FilingRef

	Text       string     // plain text, markup already removed upstream
	FilingDate *time.Time // nil when unknown or unparsable
	RawDate    string     // date as given by the metadata provider, "" when absent
	FormType   string     // "" when unknown
}

// AnalyzeOptions are per-run knobs for one filing analysis
type AnalyzeOptions struct {
	WindowDays int
	IncludeRaw bool
}
