// Package pipeline orchestrates one document's overlap analysis:
// extract, filter, trim, detect, classify, report, and the optional
// marked-copy and JSON outputs.
package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glyphmark/glyphmark/internal/common"
	"github.com/glyphmark/glyphmark/internal/glyph"
	"github.com/glyphmark/glyphmark/internal/overlap"
	"github.com/glyphmark/glyphmark/internal/pdf"
)

// Options configure one pipeline instance. The zero value disables
// every optional pass.
type Options struct {
	// IncludeWatermarks disables the watermark filter.
	IncludeWatermarks bool
	Watermark         glyph.WatermarkPolicy

	// TrimWhitespace enables the per-character box trimming pass at the
	// given scale.
	TrimWhitespace bool
	TrimScale      float64

	// UnionThresholdPct drops pairs whose union percentage falls below
	// it; 0 keeps every intersecting pair.
	UnionThresholdPct float64

	// Threshold gates marking: a document is marked only when it has
	// more than Threshold surviving pairs.
	Threshold int

	// Labels adds per-region overlap counts to marked copies.
	Labels bool

	// JSONReport writes a <name>_overlaps.json report next to the
	// marked copy, even when the pair list is empty.
	JSONReport bool

	// OutputDir redirects marked copies and reports; empty writes them
	// alongside the input.
	OutputDir string
}

// Validate rejects option values the engine cannot run with.
func (o Options) Validate() error {
	if o.TrimScale < 0 {
		return fmt.Errorf("trim scale must be >= 0, got %g", o.TrimScale)
	}
	if o.UnionThresholdPct < 0 || o.UnionThresholdPct > 100 {
		return fmt.Errorf("union threshold must be within [0,100], got %g", o.UnionThresholdPct)
	}
	if o.Threshold < 0 {
		return fmt.Errorf("marking threshold must be >= 0, got %d", o.Threshold)
	}
	return nil
}

// Pipeline processes documents one at a time. It holds no per-document
// state, so distinct documents may be processed concurrently by
// separate callers.
type Pipeline struct {
	opts      Options
	extractor pdf.Extractor
	annotator *pdf.Annotator
}

// New builds a pipeline after validating the options.
func New(opts Options) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline options: %w", err)
	}
	if opts.Watermark == (glyph.WatermarkPolicy{}) {
		opts.Watermark = glyph.DefaultWatermarkPolicy()
	}
	return &Pipeline{
		opts:      opts,
		extractor: pdf.NewTextPositionExtractor(),
		annotator: pdf.NewAnnotator(),
	}, nil
}

// WithExtractor swaps the glyph source, used by tests and callers with
// their own extraction service.
func (p *Pipeline) WithExtractor(e pdf.Extractor) *Pipeline {
	p.extractor = e
	return p
}

// Analysis is the engine's output for one document before any I/O.
type Analysis struct {
	Report *overlap.Report

	// Rects holds, per page, the source rectangles of glyphs involved
	// in surviving pairs.
	Rects map[int][]glyph.Rect

	// Labels are the region-count labels; empty when labels are
	// disabled.
	Labels []overlap.Label
}

// Analyze runs the pure part of the pipeline over extracted glyphs. It
// is total over well-formed records: it always terminates with a
// report and performs no I/O.
func (p *Pipeline) Analyze(glyphs []glyph.Record, dims map[int]overlap.PageDims, meta overlap.Metadata) *Analysis {
	kept, filtered := glyph.FilterWatermarks(glyphs, p.opts.IncludeWatermarks, p.opts.Watermark)

	var trimmed []glyph.Trimmed
	var trimCount int
	if p.opts.TrimWhitespace {
		trimmed, trimCount = glyph.TrimAll(kept, p.opts.TrimScale)
	} else {
		trimmed = glyph.PassThrough(kept)
	}

	res := overlap.Detect(trimmed, p.opts.UnionThresholdPct)
	cls := overlap.Classify(res.Pairs, dims)

	a := &Analysis{
		Report: overlap.BuildReport(res, cls, meta, filtered, trimCount),
		Rects:  res.Involved,
	}
	if p.opts.Labels {
		a.Labels = overlap.BuildLabels(cls)
	}
	return a
}

// DocumentResult summarizes one processed document.
type DocumentResult struct {
	Path       string        `json:"path"`
	Overlaps   int           `json:"overlaps"`
	MarkedPath string        `json:"marked_path,omitempty"`
	JSONPath   string        `json:"json_path,omitempty"`
	Filtered   int           `json:"filtered_watermarks"`
	Trimmed    int           `json:"trimmed_boxes"`
	Dropped    int           `json:"dropped_glyphs"`
	Duration   time.Duration `json:"-"`
	Report     *overlap.Report
}

// ProcessFile runs the full pipeline for one document: extraction,
// analysis, and the gated marked-copy and JSON outputs.
func (p *Pipeline) ProcessFile(path string) (*DocumentResult, error) {
	timer := common.NewNamedTimer(filepath.Base(path))

	ext, err := p.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("glyph extraction failed for %s: %w", path, err)
	}

	meta := overlap.Metadata{File: filepath.Base(path), Path: path}
	analysis := p.Analyze(ext.Glyphs, ext.PageDims, meta)
	report := analysis.Report

	result := &DocumentResult{
		Path:     path,
		Overlaps: report.TotalOverlaps,
		Filtered: report.FilteredWatermarks,
		Trimmed:  report.TrimmedBoxes,
		Dropped:  ext.Dropped,
		Report:   report,
	}

	if report.MarkingNeeded(p.opts.Threshold) {
		outPath := p.outputPath(pdf.MarkedPath(path))
		if err := p.annotator.Annotate(path, outPath, analysis.Rects, analysis.Labels); err != nil {
			return nil, err
		}
		result.MarkedPath = outPath
		slog.Info("marked document written",
			"file", path, "marked", outPath, "overlaps", report.TotalOverlaps)
	} else {
		slog.Debug("marking skipped", "file", path, "overlaps", report.TotalOverlaps,
			"threshold", p.opts.Threshold)
	}

	if p.opts.JSONReport {
		jsonPath, err := p.writeReport(path, report)
		if err != nil {
			return nil, err
		}
		result.JSONPath = jsonPath
	}

	result.Duration = timer.Stop()
	return result, nil
}

// writeReport serializes the report to <base>_overlaps.json. The file
// is written even when the pair list is empty so callers always get the
// filtered/trimmed counts.
func (p *Pipeline) writeReport(path string, report *overlap.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize report for %s: %w", path, err)
	}

	ext := filepath.Ext(path)
	jsonPath := p.outputPath(strings.TrimSuffix(path, ext) + "_overlaps.json")
	if err := os.WriteFile(jsonPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", jsonPath, err)
	}
	return jsonPath, nil
}

// outputPath redirects an output file into the configured directory,
// when one is set.
func (p *Pipeline) outputPath(path string) string {
	if p.opts.OutputDir == "" {
		return path
	}
	return filepath.Join(p.opts.OutputDir, filepath.Base(path))
}
