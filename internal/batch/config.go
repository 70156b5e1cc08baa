package batch

import (
	"runtime"

	"github.com/glyphmark/glyphmark/internal/pipeline"
)

// Config holds all configuration for batch document processing.
type Config struct {
	// Analysis settings, handed to the per-document pipeline.
	Pipeline pipeline.Options

	// Parallel processing settings. Workers <= 0 means one worker per
	// CPU.
	Workers         int
	ContinueOnError bool

	// File discovery settings.
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Output settings.
	Format     string
	OutputFile string
	Quiet      bool
	ShowStats  bool
}

// DefaultIncludePatterns matches the documents the scanner processes.
var DefaultIncludePatterns = []string{"*.pdf"}

// effectiveWorkers resolves the worker count.
func (c *Config) effectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
