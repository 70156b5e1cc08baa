package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/glyphmark/glyphmark/internal/batch"
	"github.com/glyphmark/glyphmark/internal/config"
	"github.com/glyphmark/glyphmark/internal/pipeline"
)

// scanCmd represents the scan command for batch overlap detection.
var scanCmd = &cobra.Command{
	Use:   "scan [files|dirs...]",
	Short: "Scan documents for glyph overlaps and write marked copies",
	Long: `Scan PDF files or directories for character-level glyph overlaps.
Documents whose overlap count exceeds the marking threshold get a marked
copy (<name>_marked.pdf) with semi-transparent red overlays; already
marked copies are skipped. Optionally a JSON overlap report
(<name>_overlaps.json) is written per document.

Examples:
  glyphmark scan proofs/
  glyphmark scan proofs/ --recursive --workers 8
  glyphmark scan chapter.pdf --trim-whitespace --trim-scale 0.5
  glyphmark scan proofs/ --union-threshold 10 --json
  glyphmark scan proofs/ --threshold 50 --no-labels`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runScanCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence
// system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{
		Pipeline: pipeline.Options{
			IncludeWatermarks: cfg.Analysis.IncludeWatermarks,
			Watermark:         cfg.Analysis.WatermarkPolicy(),
			TrimWhitespace:    cfg.Analysis.TrimWhitespace,
			TrimScale:         cfg.Analysis.TrimScale,
			UnionThresholdPct: cfg.Analysis.UnionThreshold,
			Threshold:         cfg.Analysis.Threshold,
			Labels:            cfg.Output.Labels,
			JSONReport:        cfg.Output.JSON,
			OutputDir:         cfg.Output.Dir,
		},
		Workers:         cfg.Batch.Workers,
		ContinueOnError: cfg.Batch.ContinueOnError,
		Recursive:       cfg.Batch.Recursive,
		IncludePatterns: cfg.Batch.Include,
		ExcludePatterns: cfg.Batch.Exclude,
		Format:          cfg.Output.Format,
		OutputFile:      cfg.Output.File,
	}

	if cmd.Flags().Changed("include-watermarks") {
		batchConfig.Pipeline.IncludeWatermarks, _ = cmd.Flags().GetBool("include-watermarks")
	}
	if cmd.Flags().Changed("trim-whitespace") {
		batchConfig.Pipeline.TrimWhitespace, _ = cmd.Flags().GetBool("trim-whitespace")
	}
	if cmd.Flags().Changed("trim-scale") {
		batchConfig.Pipeline.TrimScale, _ = cmd.Flags().GetFloat64("trim-scale")
	}
	if cmd.Flags().Changed("union-threshold") {
		batchConfig.Pipeline.UnionThresholdPct, _ = cmd.Flags().GetFloat64("union-threshold")
	}
	if cmd.Flags().Changed("threshold") {
		batchConfig.Pipeline.Threshold, _ = cmd.Flags().GetInt("threshold")
	}
	if cmd.Flags().Changed("no-labels") {
		noLabels, _ := cmd.Flags().GetBool("no-labels")
		batchConfig.Pipeline.Labels = !noLabels
	}
	if cmd.Flags().Changed("json") {
		batchConfig.Pipeline.JSONReport, _ = cmd.Flags().GetBool("json")
	}
	if cmd.Flags().Changed("output-dir") {
		batchConfig.Pipeline.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}

	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	}
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}

	// Progress settings are CLI-only.
	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	batchConfig.ShowStats, _ = cmd.Flags().GetBool("stats")

	return batchConfig
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	batchConfig := configToBatchConfig(cfg, cmd)

	if !batchConfig.Quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scanning %d path(s)...\n", len(args))
	}

	result, err := batch.ProcessBatch(args, batchConfig)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	if err := result.SaveResults(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	if batchConfig.ShowStats {
		result.PrintStats(batchConfig.Quiet)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Analysis flags
	scanCmd.Flags().Bool("include-watermarks", false,
		"include watermark text in overlap detection (default: filter out watermarks)")
	scanCmd.Flags().Bool("trim-whitespace", false,
		"trim character-specific whitespace from glyph bounding boxes before detection")
	scanCmd.Flags().Float64("trim-scale", 1.0,
		"scale factor for whitespace trimming (0.5 for less trim, 2.0 for more)")
	scanCmd.Flags().Float64("union-threshold", 0,
		"minimum percentage-of-union for an overlap to count (0-100)")
	scanCmd.Flags().Int("threshold", 0,
		"only create a marked copy when overlaps exceed this count")

	// Output flags
	scanCmd.Flags().Bool("no-labels", false, "do not add region labels (e.g. \"bottom-left: 2\") to marked copies")
	scanCmd.Flags().Bool("json", false, "export overlap data to JSON report files (*_overlaps.json)")
	scanCmd.Flags().String("output-dir", "", "directory for marked copies and reports (default: alongside inputs)")
	scanCmd.Flags().StringP("format", "f", "text", "summary output format: text, json, csv")
	scanCmd.Flags().StringP("output", "o", "", "summary output file (default: stdout)")

	// Parallel processing flags
	scanCmd.Flags().IntP("workers", "w", 0,
		fmt.Sprintf("number of parallel workers (default: %d)", runtime.NumCPU()))

	// File discovery flags
	scanCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	scanCmd.Flags().StringSlice("include", batch.DefaultIncludePatterns, "file patterns to include")
	scanCmd.Flags().StringSlice("exclude", []string{}, "file patterns to exclude")

	// Progress flags
	scanCmd.Flags().Bool("quiet", false, "suppress progress output")
	scanCmd.Flags().Bool("stats", false, "show processing statistics")
}
