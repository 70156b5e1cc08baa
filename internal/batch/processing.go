package batch

import (
	"log/slog"
	"sync"

	"github.com/glyphmark/glyphmark/internal/pipeline"
)

// FileResult records the outcome for one document. Either Result is set
// or Error carries the logged failure.
type FileResult struct {
	Path   string                   `json:"path"`
	Result *pipeline.DocumentResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// processDocumentsParallel fans the files out over a fixed worker pool.
// The pipeline holds no cross-document state, so workers share one
// instance. Results land at their input index, keeping output order
// stable regardless of completion order.
func processDocumentsParallel(pl *pipeline.Pipeline, files []string, workers int) []FileResult {
	results := make([]FileResult, len(files))

	if workers > len(files) {
		workers = len(files)
	}

	indices := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = processDocument(pl, files[i])
			}
		}()
	}

	for i := range files {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}

// processDocument runs one document and converts a failure into a
// recorded, logged result. One bad document never halts the batch.
func processDocument(pl *pipeline.Pipeline, path string) FileResult {
	res, err := pl.ProcessFile(path)
	if err != nil {
		slog.Error("document processing failed", "file", path, "error", err)
		return FileResult{Path: path, Error: err.Error()}
	}
	return FileResult{Path: path, Result: res}
}
