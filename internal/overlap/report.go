package overlap

import (
	"math"
	"sort"

	"github.com/glyphmark/glyphmark/internal/glyph"
)

// PairRecord is the JSON-serializable form of one surviving overlap.
// The field names are a stable external contract; consumers parse them.
type PairRecord struct {
	CharA          string     `json:"charA"`
	CharB          string     `json:"charB"`
	Page           int        `json:"page"`
	BBoxA          glyph.Rect `json:"bboxA"`
	BBoxB          glyph.Rect `json:"bboxB"`
	OverlapArea    float64    `json:"overlap_area"`
	PercentOfA     float64    `json:"percentage_of_char_a"`
	PercentOfB     float64    `json:"percentage_of_char_b"`
	PercentOfUnion float64    `json:"percentage_of_union"`
}

// CharStat is one row of the character-frequency table, most frequent
// first.
type CharStat struct {
	Character    string  `json:"character"`
	OverlapCount int     `json:"overlap_count"`
	Percentage   float64 `json:"percentage"`
}

// Metadata identifies the document a report describes.
type Metadata struct {
	File string
	Path string
}

// Report aggregates one document's overlap analysis. Built fresh per
// document, serialized on request, then discarded.
type Report struct {
	File               string         `json:"pdf_file"`
	Path               string         `json:"pdf_path"`
	TotalOverlaps      int            `json:"total_overlaps"`
	FilteredWatermarks int            `json:"filtered_watermarks"`
	TrimmedBoxes       int            `json:"trimmed_boxes"`
	Overlaps           []PairRecord   `json:"overlaps"`
	RegionCounts       map[Region]int `json:"region_counts"`
	CharacterStats     []CharStat     `json:"character_stats"`
	TotalUniqueChars   int            `json:"total_unique_chars"`
	TotalOccurrences   int            `json:"total_character_occurrences"`
}

// BuildReport assembles the document report from a detection pass and
// its classification. filtered and trimmed are the watermark-filter and
// trimmer counters carried through for diagnostics.
func BuildReport(res Result, cls Classification, meta Metadata, filtered, trimmed int) *Report {
	r := &Report{
		File:               meta.File,
		Path:               meta.Path,
		TotalOverlaps:      len(res.Pairs),
		FilteredWatermarks: filtered,
		TrimmedBoxes:       trimmed,
		Overlaps:           make([]PairRecord, 0, len(res.Pairs)),
		RegionCounts:       cls.RegionCounts,
	}

	for _, p := range res.Pairs {
		r.Overlaps = append(r.Overlaps, PairRecord{
			CharA:          p.A.Char,
			CharB:          p.B.Char,
			Page:           p.Page,
			BBoxA:          p.A.Source.Rect(),
			BBoxB:          p.B.Source.Rect(),
			OverlapArea:    round2(p.OverlapArea),
			PercentOfA:     round2(p.PercentOfA),
			PercentOfB:     round2(p.PercentOfB),
			PercentOfUnion: round2(p.PercentOfUnion),
		})
	}

	r.CharacterStats, r.TotalOccurrences = characterStats(cls.CharFrequency)
	r.TotalUniqueChars = len(r.CharacterStats)

	return r
}

// MarkingNeeded reports whether the document carries enough overlaps to
// warrant a marked copy. At or below the threshold the annotation step
// is skipped, though the JSON report is still produced.
func (r *Report) MarkingNeeded(threshold int) bool {
	return r.TotalOverlaps > threshold
}

// Label is one region-count text label for the annotation renderer:
// per non-empty region per page, when labels are enabled.
type Label struct {
	Page   int
	Region Region
	Count  int
}

// BuildLabels derives the per-page region labels from a classification,
// ordered by page then by the canonical region order.
func BuildLabels(cls Classification) []Label {
	pages := make([]int, 0, len(cls.PageRegions))
	for page := range cls.PageRegions {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	var labels []Label
	for _, page := range pages {
		counts := cls.PageRegions[page]
		for _, region := range Regions {
			if n := counts[region]; n > 0 {
				labels = append(labels, Label{Page: page, Region: region, Count: n})
			}
		}
	}
	return labels
}

// characterStats orders the frequency table most-frequent first, ties
// broken by character, with each row's share of all occurrences.
func characterStats(freq map[string]int) ([]CharStat, int) {
	total := 0
	for _, n := range freq {
		total += n
	}
	if total == 0 {
		return nil, 0
	}

	stats := make([]CharStat, 0, len(freq))
	for ch, n := range freq {
		stats = append(stats, CharStat{
			Character:    ch,
			OverlapCount: n,
			Percentage:   round2(float64(n) / float64(total) * 100),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].OverlapCount != stats[j].OverlapCount {
			return stats[i].OverlapCount > stats[j].OverlapCount
		}
		return stats[i].Character < stats[j].Character
	})

	return stats, total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
