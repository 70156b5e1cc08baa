package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glyphmark/glyphmark/internal/overlap"
	"github.com/glyphmark/glyphmark/internal/pdf"
	"github.com/glyphmark/glyphmark/internal/pipeline"
)

// reportCmd analyzes a single document and prints its overlap report to
// stdout without writing a marked copy.
var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Print a document's overlap report as JSON without marking it",
	Long: `Analyze a single PDF and print the overlap report to stdout. No marked
copy is written; use this to inspect a document or feed downstream
tooling.

Examples:
  glyphmark report chapter.pdf
  glyphmark report chapter.pdf --trim-whitespace --union-threshold 10`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runReportCommand,
}

func runReportCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := pipeline.Options{
		IncludeWatermarks: cfg.Analysis.IncludeWatermarks,
		Watermark:         cfg.Analysis.WatermarkPolicy(),
		TrimWhitespace:    cfg.Analysis.TrimWhitespace,
		TrimScale:         cfg.Analysis.TrimScale,
		UnionThresholdPct: cfg.Analysis.UnionThreshold,
	}
	if cmd.Flags().Changed("include-watermarks") {
		opts.IncludeWatermarks, _ = cmd.Flags().GetBool("include-watermarks")
	}
	if cmd.Flags().Changed("trim-whitespace") {
		opts.TrimWhitespace, _ = cmd.Flags().GetBool("trim-whitespace")
	}
	if cmd.Flags().Changed("trim-scale") {
		opts.TrimScale, _ = cmd.Flags().GetFloat64("trim-scale")
	}
	if cmd.Flags().Changed("union-threshold") {
		opts.UnionThresholdPct, _ = cmd.Flags().GetFloat64("union-threshold")
	}

	pl, err := pipeline.New(opts)
	if err != nil {
		return err
	}

	path := args[0]
	ext, err := pdf.NewTextPositionExtractor().Extract(path)
	if err != nil {
		return fmt.Errorf("glyph extraction failed for %s: %w", path, err)
	}

	meta := overlap.Metadata{File: filepath.Base(path), Path: path}
	analysis := pl.Analyze(ext.Glyphs, ext.PageDims, meta)

	data, err := json.MarshalIndent(analysis.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Bool("include-watermarks", false,
		"include watermark text in overlap detection (default: filter out watermarks)")
	reportCmd.Flags().Bool("trim-whitespace", false,
		"trim character-specific whitespace from glyph bounding boxes before detection")
	reportCmd.Flags().Float64("trim-scale", 1.0,
		"scale factor for whitespace trimming (0.5 for less trim, 2.0 for more)")
	reportCmd.Flags().Float64("union-threshold", 0,
		"minimum percentage-of-union for an overlap to count (0-100)")
}
