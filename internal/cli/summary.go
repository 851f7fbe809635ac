package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"pixpress/internal/models"
)

func printSummary(w io.Writer, stats models.RunStats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run %s finished in %s\n", stats.RunID, stats.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  processed: %d  failed: %d  skipped: %d\n",
		stats.Processed, stats.Failed, stats.Skipped)
	if stats.Processed > 0 {
		fmt.Fprintf(w, "  size: %s -> %s (%.1f%% saved)\n",
			humanize.Bytes(uint64(stats.BytesIn)),
			humanize.Bytes(uint64(stats.BytesOut)),
			stats.SavedPercent())
	}
	if len(stats.Failures) > 0 {
		fmt.Fprintln(w, "  failures:")
		for _, f := range stats.Failures {
			fmt.Fprintf(w, "    %s (%s): %s\n", f.Path, f.Kind, f.Message)
		}
	}
}
