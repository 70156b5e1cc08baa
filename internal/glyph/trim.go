package glyph

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category classifies a character for whitespace trimming. Rendered
// glyphs rarely fill their reported boxes; how much visual whitespace a
// box carries depends on the character's shape class.
type Category int

const (
	CategoryPunctuation Category = iota
	CategoryThinStem
	CategoryHook
	CategoryBracket
	CategoryDiacritic
	CategoryDigit
	CategoryLetter
)

// String returns the category name for diagnostics.
func (c Category) String() string {
	switch c {
	case CategoryPunctuation:
		return "punctuation"
	case CategoryThinStem:
		return "thin-stem"
	case CategoryHook:
		return "hook"
	case CategoryBracket:
		return "bracket"
	case CategoryDiacritic:
		return "diacritic"
	case CategoryDigit:
		return "digit"
	default:
		return "letter"
	}
}

// Insets are the fractions of a glyph's own width/height removed from
// each side at scale 1.0.
type Insets struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

const (
	punctuationChars = ",.;:'\""
	thinStemChars    = "il|1t"
	hookChars        = "fj"
	bracketChars     = "()[]{}"
	diacriticChars   = "~^"
)

var categoryInsets = map[Category]Insets{
	CategoryPunctuation: {Left: 0.25, Right: 0.25, Top: 0.20, Bottom: 0.20},
	CategoryThinStem:    {Left: 0.12, Right: 0.12, Top: 0.18, Bottom: 0.18},
	CategoryHook:        {Left: 0.10, Right: 0.10, Top: 0.12, Bottom: 0.12},
	CategoryBracket:     {Left: 0.08, Right: 0.08, Top: 0.10, Bottom: 0.10},
	CategoryDiacritic:   {Left: 0.20, Right: 0.20, Top: 0.20, Bottom: 0.20},
	CategoryDigit:       {Left: 0.06, Right: 0.06, Top: 0.08, Bottom: 0.08},
	CategoryLetter:      {Left: 0.07, Right: 0.07, Top: 0.10, Bottom: 0.10},
}

// Classify assigns a character to exactly one trim category. Checks run
// in priority order and the first match wins; anything uncategorized,
// including multi-rune graphemes and symbols, falls back to the letter
// insets.
func Classify(ch string) Category {
	switch {
	case strings.Contains(punctuationChars, ch) && ch != "":
		return CategoryPunctuation
	case strings.Contains(thinStemChars, ch) && ch != "":
		return CategoryThinStem
	case strings.Contains(hookChars, ch) && ch != "":
		return CategoryHook
	case strings.Contains(bracketChars, ch) && ch != "":
		return CategoryBracket
	case strings.Contains(diacriticChars, ch) && ch != "":
		return CategoryDiacritic
	case isDigit(ch):
		return CategoryDigit
	default:
		return CategoryLetter
	}
}

func isDigit(ch string) bool {
	r, size := utf8.DecodeRuneInString(ch)
	return size == len(ch) && unicode.IsDigit(r)
}

// TrimInsets returns the per-side trim fractions for a character.
func TrimInsets(ch string) Insets {
	return categoryInsets[Classify(ch)]
}

// Trim shrinks the glyph's box by the character's insets scaled by
// scale. Width and height clamp to 0 when the insets would invert the
// box; at scale 0 the transform is the identity. The bottom inset moves
// y upward, the top inset reduces height.
func Trim(g Record, scale float64) Trimmed {
	t := AsTrimmed(g)
	if scale == 0 || g.Width <= 0 || g.Height <= 0 {
		return t
	}

	in := TrimInsets(g.Char)

	t.X = g.X + g.Width*in.Left*scale
	t.Width = max(0, g.Width*(1-(in.Left+in.Right)*scale))
	t.Y = g.Y + g.Height*in.Bottom*scale
	t.Height = max(0, g.Height*(1-(in.Top+in.Bottom)*scale))

	return t
}

// TrimAll trims every glyph and returns the number of boxes that
// actually changed. The count is an explicit result of the pass, kept
// for diagnostics only.
func TrimAll(glyphs []Record, scale float64) ([]Trimmed, int) {
	trimmed := make([]Trimmed, len(glyphs))
	changed := 0
	for i, g := range glyphs {
		trimmed[i] = Trim(g, scale)
		if trimmed[i].Rect() != g.Rect() {
			changed++
		}
	}
	return trimmed, changed
}

// PassThrough wraps records without trimming, used when the trimming
// pass is disabled.
func PassThrough(glyphs []Record) []Trimmed {
	trimmed := make([]Trimmed, len(glyphs))
	for i, g := range glyphs {
		trimmed[i] = AsTrimmed(g)
	}
	return trimmed
}
