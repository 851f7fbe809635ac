package models

import "time"

// FailureRecord describes one terminally failed file for the summary.
type FailureRecord struct {
	Path    string
	Kind    ErrorKind
	Message string
}

// RunStats is the immutable snapshot of a finished (or cancelled) run.
// The runner owns the mutable accumulator; callers only ever see this.
type RunStats struct {
	RunID string

	Processed int
	Failed    int
	// Skipped counts files seen during traversal whose extension is not a
	// recognized image type.
	Skipped int

	BytesIn  int64
	BytesOut int64

	Failures []FailureRecord
	Elapsed  time.Duration
}

// SavedPercent reports the aggregate size reduction of processed files.
func (s RunStats) SavedPercent() float64 {
	if s.BytesIn == 0 {
		return 0
	}
	return (1 - float64(s.BytesOut)/float64(s.BytesIn)) * 100
}
