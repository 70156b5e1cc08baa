// Package batch runs the overlap pipeline over many documents:
// discovery, parallel per-document processing, and result formatting.
package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/glyphmark/glyphmark/internal/pipeline"
)

// ProcessBatch processes a batch of documents with the given
// configuration. Documents are independent, so failures are recorded
// per file and the batch continues unless ContinueOnError is off.
func ProcessBatch(paths []string, config *Config) (*Result, error) {
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = DefaultIncludePatterns
	}

	files, err := discoverDocuments(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no documents found")
	}

	pl, err := pipeline.New(config.Pipeline)
	if err != nil {
		return nil, err
	}

	workers := config.effectiveWorkers()
	startTime := time.Now()
	fileResults := processDocumentsParallel(pl, files, workers)
	duration := time.Since(startTime)

	if !config.ContinueOnError {
		for _, fr := range fileResults {
			if fr.Error != "" {
				return nil, fmt.Errorf("processing %s failed: %s", fr.Path, fr.Error)
			}
		}
	}

	return &Result{
		Files:       fileResults,
		Duration:    duration,
		WorkerCount: workers,
	}, nil
}
