// Package config provides the centralized configuration for glyphmark,
// loaded from configuration files, environment variables, and
// command-line flags.
package config

import (
	"fmt"

	"github.com/glyphmark/glyphmark/internal/glyph"
)

// Config represents the complete configuration for the glyphmark
// application.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Overlap analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" json:"analysis"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// AnalysisConfig contains the overlap engine settings.
type AnalysisConfig struct {
	IncludeWatermarks bool    `mapstructure:"include_watermarks" yaml:"include_watermarks" json:"include_watermarks"`
	TrimWhitespace    bool    `mapstructure:"trim_whitespace" yaml:"trim_whitespace" json:"trim_whitespace"`
	TrimScale         float64 `mapstructure:"trim_scale" yaml:"trim_scale" json:"trim_scale"`
	UnionThreshold    float64 `mapstructure:"union_threshold" yaml:"union_threshold" json:"union_threshold"`
	Threshold         int     `mapstructure:"threshold" yaml:"threshold" json:"threshold"`

	// Watermark heuristic tunables.
	WatermarkFontSize       float64 `mapstructure:"watermark_font_size" yaml:"watermark_font_size" json:"watermark_font_size"`
	WatermarkMinPatternSize float64 `mapstructure:"watermark_min_pattern_size" yaml:"watermark_min_pattern_size" json:"watermark_min_pattern_size"`
	WatermarkChars          string  `mapstructure:"watermark_chars" yaml:"watermark_chars" json:"watermark_chars"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	JSON   bool   `mapstructure:"json" yaml:"json" json:"json"`
	Labels bool   `mapstructure:"labels" yaml:"labels" json:"labels"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
	Dir    string `mapstructure:"dir" yaml:"dir" json:"dir"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	ContinueOnError bool     `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
	Include         []string `mapstructure:"include" yaml:"include" json:"include"`
	Exclude         []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// DefaultConfig returns the configuration used when nothing overrides
// it.
func DefaultConfig() *Config {
	wm := glyph.DefaultWatermarkPolicy()
	return &Config{
		LogLevel: "info",
		Analysis: AnalysisConfig{
			TrimScale:               1.0,
			WatermarkFontSize:       wm.FontSizeCutoff,
			WatermarkMinPatternSize: wm.MinPatternSize,
			WatermarkChars:          wm.Chars,
		},
		Output: OutputConfig{
			Labels: true,
			Format: "text",
		},
		Batch: BatchConfig{
			ContinueOnError: true,
			Include:         []string{"*.pdf"},
		},
	}
}

// WatermarkPolicy builds the filter policy from the configuration.
func (c *AnalysisConfig) WatermarkPolicy() glyph.WatermarkPolicy {
	return glyph.WatermarkPolicy{
		FontSizeCutoff: c.WatermarkFontSize,
		MinPatternSize: c.WatermarkMinPatternSize,
		Chars:          c.WatermarkChars,
	}
}

// Validate checks the configuration for invalid values. Validation
// failures are fatal at startup; they are the only error class that
// stops a run.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn or error)", c.LogLevel)
	}

	if err := c.Analysis.validate(); err != nil {
		return err
	}

	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid output format %q (must be text, json or csv)", c.Output.Format)
	}

	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch workers must be >= 0, got %d", c.Batch.Workers)
	}

	return nil
}

func (c *AnalysisConfig) validate() error {
	if c.TrimScale < 0 {
		return fmt.Errorf("trim_scale must be >= 0, got %g", c.TrimScale)
	}
	if c.UnionThreshold < 0 || c.UnionThreshold > 100 {
		return fmt.Errorf("union_threshold must be within [0,100], got %g", c.UnionThreshold)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be >= 0, got %d", c.Threshold)
	}
	if c.WatermarkFontSize <= 0 {
		return fmt.Errorf("watermark_font_size must be > 0, got %g", c.WatermarkFontSize)
	}
	if c.WatermarkMinPatternSize <= 0 || c.WatermarkMinPatternSize >= c.WatermarkFontSize {
		return fmt.Errorf("watermark_min_pattern_size must be within (0, watermark_font_size), got %g",
			c.WatermarkMinPatternSize)
	}
	return nil
}
