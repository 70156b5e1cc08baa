package glyph

import (
	"strings"
	"unicode/utf8"
)

// Watermark heuristics: proof stamps and similar overlay text render as
// individual glyphs at unusually large font sizes. Very large glyphs
// are always noise; mid-sized glyphs are noise only when the character
// is one that common stamp words are made of.
const (
	// DefaultWatermarkFontSize is the size at and above which a glyph is
	// always treated as watermark text.
	DefaultWatermarkFontSize = 40.0

	// DefaultWatermarkMinPatternSize is the lower bound of the size band
	// in which the character-set heuristic applies.
	DefaultWatermarkMinPatternSize = 20.0

	// DefaultWatermarkChars holds the distinct letters of the common
	// stamp words (UNCORRECTED, CORRECTED, PROOF, DRAFT, CONFIDENTIAL,
	// PRELIMINARY, WATERMARK). The membership set is a tunable, not a
	// fixed universal list.
	DefaultWatermarkChars = "UNCORTEDPFAILMWY"
)

// WatermarkPolicy configures the watermark filter.
type WatermarkPolicy struct {
	// FontSizeCutoff removes any glyph with FontSize >= cutoff.
	FontSizeCutoff float64

	// MinPatternSize is the smallest FontSize at which Chars membership
	// removes a glyph. The band is [MinPatternSize, FontSizeCutoff).
	MinPatternSize float64

	// Chars is the set of common watermark characters, matched
	// case-insensitively against single-rune glyphs.
	Chars string
}

// DefaultWatermarkPolicy returns the policy used when none is
// configured.
func DefaultWatermarkPolicy() WatermarkPolicy {
	return WatermarkPolicy{
		FontSizeCutoff: DefaultWatermarkFontSize,
		MinPatternSize: DefaultWatermarkMinPatternSize,
		Chars:          DefaultWatermarkChars,
	}
}

// IsWatermark reports whether the record matches the policy.
func (p WatermarkPolicy) IsWatermark(r Record) bool {
	if r.FontSize >= p.FontSizeCutoff {
		return true
	}
	if r.FontSize >= p.MinPatternSize && p.containsChar(r.Char) {
		return true
	}
	return false
}

// containsChar reports whether the glyph's character belongs to the
// configured watermark set. Multi-rune graphemes never match: stamp
// text is plain ASCII lettering.
func (p WatermarkPolicy) containsChar(ch string) bool {
	if utf8.RuneCountInString(ch) != 1 {
		return false
	}
	return strings.ContainsAny(p.Chars, strings.ToUpper(ch))
}

// FilterWatermarks removes watermark glyphs per the policy and returns
// the kept records plus the number removed. When includeWatermarks is
// true the input passes through untouched.
func FilterWatermarks(glyphs []Record, includeWatermarks bool, p WatermarkPolicy) ([]Record, int) {
	if includeWatermarks {
		return glyphs, 0
	}

	kept := make([]Record, 0, len(glyphs))
	for _, g := range glyphs {
		if p.IsWatermark(g) {
			continue
		}
		kept = append(kept, g)
	}
	return kept, len(glyphs) - len(kept)
}
