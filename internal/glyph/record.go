// Package glyph provides the glyph record model plus the watermark
// filtering and whitespace trimming passes applied before overlap
// detection.
package glyph

// Record is one rendered character occurrence at a specific location on
// a page. Coordinates are in document points with a bottom-left origin;
// Page is 1-based. Records are produced once by the extractor and never
// mutated afterward: trimming returns a new record and keeps the
// original for reporting.
type Record struct {
	Char     string  `json:"char"`
	Page     int     `json:"page"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"font_size"`
}

// Rect is an axis-aligned rectangle in bottom-left-origin coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the record's bounding box.
func (r Record) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Area returns the box area of the record.
func (r Record) Area() float64 {
	return r.Width * r.Height
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the top edge of the rectangle.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Intersection returns the overlap rectangle of a and b. When the boxes
// do not overlap it returns a zero-area Rect.
func Intersection(a, b Rect) Rect {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.MaxX(), b.MaxX())
	y1 := min(a.MaxY(), b.MaxY())

	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Trimmed is a record whose box has been shrunk by the whitespace
// trimmer. Source points at the untrimmed record so reports can carry
// the original coordinates.
type Trimmed struct {
	Record
	Source *Record
}

// AsTrimmed wraps a record in an identity Trimmed, used when the
// trimming pass is disabled so the detector sees a uniform input.
func AsTrimmed(r Record) Trimmed {
	src := r
	return Trimmed{Record: r, Source: &src}
}
