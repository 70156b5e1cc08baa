// Package overlap implements pairwise glyph overlap detection, spatial
// classification of the hits, and report assembly.
package overlap

import (
	"sort"

	"github.com/glyphmark/glyphmark/internal/glyph"
)

// Pair is one detected overlap between two glyphs on the same page.
// Pairs are unordered: (A,B) and (B,A) are the same pair and each
// unordered pair appears at most once per detection pass.
type Pair struct {
	A, B         glyph.Trimmed
	Page         int
	Intersection glyph.Rect
	OverlapArea  float64

	// Percentages of the intersection area relative to each box and to
	// the union of both boxes. PercentOfUnion is always in (0, 100] for
	// a materialized pair.
	PercentOfA     float64
	PercentOfB     float64
	PercentOfUnion float64
}

// Result is the outcome of one detection pass.
type Result struct {
	Pairs []Pair

	// Involved holds, per page, the deduplicated source rectangles of
	// every glyph touched by a surviving pair, in first-seen order.
	// These are the rectangles handed to the annotation renderer.
	Involved map[int][]glyph.Rect

	// BelowThreshold counts intersecting pairs dropped by the union
	// threshold.
	BelowThreshold int
}

// Detect compares every unordered pair of distinct glyphs within each
// page and materializes the pairs whose boxes intersect. Pairs with
// percentOfUnion below unionThresholdPct are dropped; a threshold of 0
// drops nothing since retained pairs always have a positive union
// percentage. Glyphs on different pages never pair.
//
// The comparison is exact and intentionally O(n²) per page: per-page
// glyph counts are bounded and execution is batch, so no sampling or
// spatial indexing is warranted.
func Detect(glyphs []glyph.Trimmed, unionThresholdPct float64) Result {
	res := Result{Involved: make(map[int][]glyph.Rect)}

	byPage := make(map[int][]glyph.Trimmed)
	for _, g := range glyphs {
		byPage[g.Page] = append(byPage[g.Page], g)
	}

	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	for _, page := range pages {
		res.detectPage(page, byPage[page], unionThresholdPct)
	}
	return res
}

func (res *Result) detectPage(page int, glyphs []glyph.Trimmed, unionThresholdPct float64) {
	seen := make(map[*glyph.Record]bool)

	for i := range glyphs {
		for j := i + 1; j < len(glyphs); j++ {
			pair, ok := makePair(glyphs[i], glyphs[j], page)
			if !ok {
				continue
			}
			if pair.PercentOfUnion < unionThresholdPct {
				res.BelowThreshold++
				continue
			}

			res.Pairs = append(res.Pairs, pair)
			for _, g := range []glyph.Trimmed{glyphs[i], glyphs[j]} {
				if !seen[g.Source] {
					seen[g.Source] = true
					res.Involved[page] = append(res.Involved[page], g.Source.Rect())
				}
			}
		}
	}
}

// makePair computes the intersection metrics for two glyphs. Pairs with
// a zero-area intersection are never materialized.
func makePair(a, b glyph.Trimmed, page int) (Pair, bool) {
	inter := glyph.Intersection(a.Rect(), b.Rect())
	overlapArea := inter.Area()
	if overlapArea <= 0 {
		return Pair{}, false
	}

	areaA := a.Area()
	areaB := b.Area()
	unionArea := areaA + areaB - overlapArea

	return Pair{
		A:              a,
		B:              b,
		Page:           page,
		Intersection:   inter,
		OverlapArea:    overlapArea,
		PercentOfA:     overlapArea / areaA * 100,
		PercentOfB:     overlapArea / areaB * 100,
		PercentOfUnion: overlapArea / unionArea * 100,
	}, true
}
