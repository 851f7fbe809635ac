package runner

import (
	"sync"
	"time"

	"pixpress/internal/models"
)

// accumulator is the single mutable owner of run statistics. All mutation
// goes through record, which is safe for concurrent workers.
type accumulator struct {
	mu       sync.Mutex
	runID    string
	skipped  int
	procOK   int
	failed   int
	bytesIn  int64
	bytesOut int64
	failures []models.FailureRecord
}

func newAccumulator(runID string, skipped int) *accumulator {
	return &accumulator{runID: runID, skipped: skipped}
}

func (a *accumulator) record(res models.TransformResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if res.OK() {
		a.procOK++
		a.bytesIn += res.OriginalSize
		a.bytesOut += res.NewSize
		return
	}
	a.failed++
	a.failures = append(a.failures, models.FailureRecord{
		Path:    res.Path,
		Kind:    res.Kind,
		Message: res.Err.Error(),
	})
}

func (a *accumulator) snapshot(elapsed time.Duration) models.RunStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	stats := models.RunStats{
		RunID:     a.runID,
		Processed: a.procOK,
		Failed:    a.failed,
		Skipped:   a.skipped,
		BytesIn:   a.bytesIn,
		BytesOut:  a.bytesOut,
		Elapsed:   elapsed,
	}
	stats.Failures = append(stats.Failures, a.failures...)
	return stats
}
