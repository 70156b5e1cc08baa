package overlap

import (
	"testing"

	"github.com/glyphmark/glyphmark/internal/glyph"
)

// pairAt builds a minimal pair whose intersection midpoint lands at
// (cx, cy) on the given page.
func pairAt(page int, cx, cy float64, chA, chB string) Pair {
	return Pair{
		A:            glyph.AsTrimmed(glyph.Record{Char: chA, Page: page}),
		B:            glyph.AsTrimmed(glyph.Record{Char: chB, Page: page}),
		Page:         page,
		Intersection: glyph.Rect{X: cx - 1, Y: cy - 1, Width: 2, Height: 2},
	}
}

func TestClassifyRegions(t *testing.T) {
	dims := map[int]PageDims{1: {Width: 300, Height: 300}}

	// One pair per region; thirds split at 100 and 200. Low y is the
	// bottom band.
	tests := []struct {
		cx, cy float64
		want   Region
	}{
		{50, 250, RegionTopLeft},
		{150, 250, RegionTopCenter},
		{250, 250, RegionTopRight},
		{50, 150, RegionMiddleLeft},
		{150, 150, RegionMiddleCenter},
		{250, 150, RegionMiddleRight},
		{50, 50, RegionBottomLeft},
		{150, 50, RegionBottomCenter},
		{250, 50, RegionBottomRight},
	}

	for _, tt := range tests {
		cls := Classify([]Pair{pairAt(1, tt.cx, tt.cy, "a", "b")}, dims)
		if cls.RegionCounts[tt.want] != 1 {
			t.Errorf("midpoint (%g, %g): expected region %s, got %v",
				tt.cx, tt.cy, tt.want, cls.RegionCounts)
		}
	}
}

func TestClassifyAggregates(t *testing.T) {
	dims := map[int]PageDims{1: {Width: 300, Height: 300}, 2: {Width: 300, Height: 300}}
	pairs := []Pair{
		pairAt(1, 50, 50, "a", "b"),
		pairAt(1, 60, 60, "a", "c"),
		pairAt(2, 250, 250, "b", "b"),
	}

	cls := Classify(pairs, dims)

	if cls.RegionCounts[RegionBottomLeft] != 2 {
		t.Errorf("expected 2 bottom-left overlaps, got %d", cls.RegionCounts[RegionBottomLeft])
	}
	if cls.RegionCounts[RegionTopRight] != 1 {
		t.Errorf("expected 1 top-right overlap, got %d", cls.RegionCounts[RegionTopRight])
	}

	if cls.PageRegions[1][RegionBottomLeft] != 2 || cls.PageRegions[2][RegionTopRight] != 1 {
		t.Errorf("per-page counts wrong: %v", cls.PageRegions)
	}

	// Both characters of every pair are counted.
	wantFreq := map[string]int{"a": 2, "b": 3, "c": 1}
	for ch, n := range wantFreq {
		if cls.CharFrequency[ch] != n {
			t.Errorf("char %q: expected frequency %d, got %d", ch, n, cls.CharFrequency[ch])
		}
	}
}

func TestClassifyUnknownPageFallsBackToLetter(t *testing.T) {
	// No dims for page 1: letter size 612x792. A midpoint at (306, 700)
	// is top-center.
	cls := Classify([]Pair{pairAt(1, 306, 700, "a", "b")}, nil)
	if cls.RegionCounts[RegionTopCenter] != 1 {
		t.Errorf("expected top-center with letter fallback, got %v", cls.RegionCounts)
	}
}

func TestClassifyEmptyPairs(t *testing.T) {
	cls := Classify(nil, nil)
	if len(cls.RegionCounts) != 0 || len(cls.PageRegions) != 0 || len(cls.CharFrequency) != 0 {
		t.Errorf("empty input must produce empty tallies: %+v", cls)
	}
}
