package batch

import (
	"fmt"
	"os"
	"time"
)

// Result holds the result of batch processing.
type Result struct {
	Files       []FileResult
	Duration    time.Duration
	WorkerCount int
}

// Stats summarizes a batch run.
type Stats struct {
	Total         int
	Processed     int
	Failed        int
	Marked        int
	Reports       int
	TotalOverlaps int
}

// Stats computes the batch summary counters.
func (r *Result) Stats() Stats {
	s := Stats{Total: len(r.Files)}
	for _, fr := range r.Files {
		if fr.Error != "" {
			s.Failed++
			continue
		}
		s.Processed++
		s.TotalOverlaps += fr.Result.Overlaps
		if fr.Result.MarkedPath != "" {
			s.Marked++
		}
		if fr.Result.JSONPath != "" {
			s.Reports++
		}
	}
	return s
}

// FormatResults formats the batch results in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	return formatBatchResults(r.Files, format)
}

// SaveResults writes the formatted results to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}

	stats := r.Stats()
	perDoc := time.Duration(0)
	if stats.Processed > 0 {
		perDoc = r.Duration / time.Duration(stats.Processed)
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total documents: %d\n", stats.Total)
	_, _ = fmt.Fprintf(os.Stdout, "  Processed: %d\n", stats.Processed)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", stats.Failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Marked: %d\n", stats.Marked)
	_, _ = fmt.Fprintf(os.Stdout, "  Reports: %d\n", stats.Reports)
	_, _ = fmt.Fprintf(os.Stdout, "  Overlaps: %d\n", stats.TotalOverlaps)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per document: %v\n", perDoc.Round(time.Millisecond))
}
