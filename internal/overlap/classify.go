package overlap

// Region is one of the nine page zones used to summarize where overlaps
// cluster.
type Region string

const (
	RegionTopLeft      Region = "top-left"
	RegionTopCenter    Region = "top-center"
	RegionTopRight     Region = "top-right"
	RegionMiddleLeft   Region = "middle-left"
	RegionMiddleCenter Region = "middle-center"
	RegionMiddleRight  Region = "middle-right"
	RegionBottomLeft   Region = "bottom-left"
	RegionBottomCenter Region = "bottom-center"
	RegionBottomRight  Region = "bottom-right"
)

// Regions lists all nine region labels in top-to-bottom, left-to-right
// order.
var Regions = []Region{
	RegionTopLeft, RegionTopCenter, RegionTopRight,
	RegionMiddleLeft, RegionMiddleCenter, RegionMiddleRight,
	RegionBottomLeft, RegionBottomCenter, RegionBottomRight,
}

// PageDims holds a page's media box size in points.
type PageDims struct {
	Width  float64
	Height float64
}

// Letter-size fallback when a page's dimensions are unknown.
var defaultPageDims = PageDims{Width: 612, Height: 792}

// Classification tallies where overlaps sit on their pages and which
// characters participate. Recomputed per document, never persisted.
type Classification struct {
	// RegionCounts are document-level totals per region.
	RegionCounts map[Region]int

	// PageRegions are per-page region counts, used for page labels.
	PageRegions map[int]map[Region]int

	// CharFrequency counts how often each character participates in an
	// overlap; both characters of every pair are counted.
	CharFrequency map[string]int
}

// Classify buckets each pair by the midpoint of its intersection
// rectangle, normalized against the page bounds and split into thirds
// on each axis. Pages missing from pageDims fall back to US Letter.
func Classify(pairs []Pair, pageDims map[int]PageDims) Classification {
	cls := Classification{
		RegionCounts:  make(map[Region]int),
		PageRegions:   make(map[int]map[Region]int),
		CharFrequency: make(map[string]int),
	}

	for _, p := range pairs {
		dims, ok := pageDims[p.Page]
		if !ok || dims.Width <= 0 || dims.Height <= 0 {
			dims = defaultPageDims
		}

		cx, cy := p.Intersection.Center()
		region := regionFor(cx/dims.Width, cy/dims.Height)

		cls.RegionCounts[region]++
		if cls.PageRegions[p.Page] == nil {
			cls.PageRegions[p.Page] = make(map[Region]int)
		}
		cls.PageRegions[p.Page][region]++

		cls.CharFrequency[p.A.Char]++
		cls.CharFrequency[p.B.Char]++
	}

	return cls
}

// regionFor maps a normalized point to its region. The vertical axis is
// bottom-left origin: low y is the bottom band.
func regionFor(nx, ny float64) Region {
	var v string
	switch {
	case ny < 1.0/3:
		v = "bottom"
	case ny < 2.0/3:
		v = "middle"
	default:
		v = "top"
	}

	var h string
	switch {
	case nx < 1.0/3:
		h = "left"
	case nx < 2.0/3:
		h = "center"
	default:
		h = "right"
	}

	return Region(v + "-" + h)
}
