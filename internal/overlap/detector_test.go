package overlap

import (
	"math"
	"testing"

	"github.com/glyphmark/glyphmark/internal/glyph"
	"github.com/glyphmark/glyphmark/internal/testutil"
)

func trimmedGlyph(ch string, page int, x, y, w, h float64) glyph.Trimmed {
	return glyph.AsTrimmed(testutil.GlyphOnPage(ch, page, x, y, w, h))
}

func TestDetectPartialOverlap(t *testing.T) {
	// Two 10x10 boxes offset by (5,5): intersection 5x5=25, union
	// 100+100-25=175.
	glyphs := []glyph.Trimmed{
		trimmedGlyph("a", 1, 0, 0, 10, 10),
		trimmedGlyph("b", 1, 5, 5, 10, 10),
	}

	res := Detect(glyphs, 0)

	if len(res.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(res.Pairs))
	}
	p := res.Pairs[0]

	if p.OverlapArea != 25 {
		t.Errorf("expected overlap area 25, got %f", p.OverlapArea)
	}
	if p.PercentOfA != 25 || p.PercentOfB != 25 {
		t.Errorf("expected 25%% of each box, got %f / %f", p.PercentOfA, p.PercentOfB)
	}
	want := 25.0 / 175.0 * 100
	if math.Abs(p.PercentOfUnion-want) > 1e-9 {
		t.Errorf("expected percentOfUnion %f, got %f", want, p.PercentOfUnion)
	}
	if p.Intersection != (glyph.Rect{X: 5, Y: 5, Width: 5, Height: 5}) {
		t.Errorf("unexpected intersection: %v", p.Intersection)
	}
}

func TestDetectUnionThreshold(t *testing.T) {
	glyphs := []glyph.Trimmed{
		trimmedGlyph("a", 1, 0, 0, 10, 10),
		trimmedGlyph("b", 1, 5, 5, 10, 10),
	}

	// percentOfUnion is about 14.29: a 20% threshold drops the pair, a
	// 10% threshold keeps it.
	dropped := Detect(glyphs, 20)
	if len(dropped.Pairs) != 0 {
		t.Errorf("threshold 20 should drop the pair, got %d pairs", len(dropped.Pairs))
	}
	if dropped.BelowThreshold != 1 {
		t.Errorf("expected 1 below-threshold pair, got %d", dropped.BelowThreshold)
	}
	if len(dropped.Involved[1]) != 0 {
		t.Errorf("dropped pairs must not contribute involved rects: %v", dropped.Involved[1])
	}

	kept := Detect(glyphs, 10)
	if len(kept.Pairs) != 1 {
		t.Errorf("threshold 10 should keep the pair, got %d pairs", len(kept.Pairs))
	}
	if kept.BelowThreshold != 0 {
		t.Errorf("expected 0 below-threshold pairs, got %d", kept.BelowThreshold)
	}
}

func TestDetectThresholdMonotonic(t *testing.T) {
	glyphs := []glyph.Trimmed{
		trimmedGlyph("a", 1, 0, 0, 10, 10),
		trimmedGlyph("b", 1, 5, 5, 10, 10),
		trimmedGlyph("c", 1, 1, 1, 10, 10),
		trimmedGlyph("d", 1, 30, 30, 10, 10),
	}

	low := Detect(glyphs, 5)
	high := Detect(glyphs, 50)

	if len(high.Pairs) > len(low.Pairs) {
		t.Errorf("raising the threshold must not add pairs: %d > %d",
			len(high.Pairs), len(low.Pairs))
	}
}

func TestDetectDifferentPagesNeverPair(t *testing.T) {
	glyphs := []glyph.Trimmed{
		trimmedGlyph("a", 1, 0, 0, 10, 10),
		trimmedGlyph("b", 2, 0, 0, 10, 10),
	}

	res := Detect(glyphs, 0)
	if len(res.Pairs) != 0 {
		t.Errorf("identical boxes on different pages must not pair: %d pairs", len(res.Pairs))
	}
}

func TestDetectEdgeTouchingIsNotOverlap(t *testing.T) {
	glyphs := []glyph.Trimmed{
		trimmedGlyph("a", 1, 0, 0, 10, 10),
		trimmedGlyph("b", 1, 10, 0, 10, 10),
	}

	res := Detect(glyphs, 0)
	if len(res.Pairs) != 0 {
		t.Errorf("shared edge must not count as overlap: %d pairs", len(res.Pairs))
	}
}

func TestDetectUnorderedPairsAppearOnce(t *testing.T) {
	glyphs := []glyph.Trimmed{
		trimmedGlyph("a", 1, 0, 0, 10, 10),
		trimmedGlyph("b", 1, 5, 5, 10, 10),
		trimmedGlyph("c", 1, 2, 2, 10, 10),
	}

	res := Detect(glyphs, 0)

	// Three glyphs, all mutually overlapping: exactly C(3,2)=3 pairs.
	if len(res.Pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(res.Pairs))
	}

	type key struct{ a, b string }
	seen := make(map[key]bool)
	for _, p := range res.Pairs {
		k := key{p.A.Char, p.B.Char}
		if seen[k] || seen[key{k.b, k.a}] {
			t.Errorf("duplicate pair (%s, %s)", k.a, k.b)
		}
		seen[k] = true
	}
}

func TestDetectInvolvedRectsDeduplicated(t *testing.T) {
	glyphs := []glyph.Trimmed{
		trimmedGlyph("a", 1, 0, 0, 10, 10),
		trimmedGlyph("b", 1, 5, 5, 10, 10),
		trimmedGlyph("c", 1, 2, 2, 10, 10),
	}

	res := Detect(glyphs, 0)

	// Each glyph participates in two pairs but appears once.
	if got := len(res.Involved[1]); got != 3 {
		t.Errorf("expected 3 involved rects, got %d", got)
	}
}

func TestDetectInvolvedRectsUseSourceBoxes(t *testing.T) {
	a := glyph.Trim(testutil.Glyph("a", 0, 0, 10, 10), 1.0)
	b := glyph.Trim(testutil.Glyph("b", 5, 5, 10, 10), 1.0)

	res := Detect([]glyph.Trimmed{a, b}, 0)
	if len(res.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(res.Pairs))
	}

	for _, r := range res.Involved[1] {
		if r != (glyph.Rect{X: 0, Y: 0, Width: 10, Height: 10}) &&
			r != (glyph.Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
			t.Errorf("involved rect is not an original box: %v", r)
		}
	}
}

func TestDetectEmptyInput(t *testing.T) {
	res := Detect(nil, 0)
	if len(res.Pairs) != 0 || res.BelowThreshold != 0 {
		t.Errorf("empty input must produce an empty result: %+v", res)
	}
}
