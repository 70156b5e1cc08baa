// Package pdf implements the two document-facing collaborators of the
// overlap engine: glyph extraction from PDF text positions and
// annotation rendering of marked copies.
package pdf

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/dslipak/pdf"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/glyphmark/glyphmark/internal/glyph"
	"github.com/glyphmark/glyphmark/internal/overlap"
)

// Extraction is the result of reading one document's glyphs.
type Extraction struct {
	Glyphs     []glyph.Record
	PageDims   map[int]overlap.PageDims
	TotalPages int

	// Dropped counts text items omitted with a logged reason instead of
	// aborting the document.
	Dropped int
}

// Extractor turns a document into a sequence of glyph records,
// draw-order sorted, with 1-based pages and bottom-left-origin
// coordinates in points.
type Extractor interface {
	Extract(path string) (*Extraction, error)
}

// TextPositionExtractor extracts glyphs from the text positions in a
// PDF's content streams. Tight outline boxes are not available at this
// level, so each glyph's box falls back to the text position's own
// reported box: the advance width and the font size. The fallback is
// opaque to the engine.
type TextPositionExtractor struct{}

// NewTextPositionExtractor returns a ready extractor.
func NewTextPositionExtractor() *TextPositionExtractor {
	return &TextPositionExtractor{}
}

// Extract reads every page of the document. Malformed pages and
// unusable text items are logged and skipped; one bad glyph never
// aborts the document.
func (e *TextPositionExtractor) Extract(path string) (*Extraction, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %q: %w", path, err)
	}

	ext := &Extraction{
		PageDims:   make(map[int]overlap.PageDims),
		TotalPages: reader.NumPage(),
	}

	for pageNum := 1; pageNum <= ext.TotalPages; pageNum++ {
		records, dims, dropped, err := extractPage(reader, pageNum)
		if err != nil {
			slog.Warn("skipping unreadable page", "file", path, "page", pageNum, "error", err)
			continue
		}
		ext.Glyphs = append(ext.Glyphs, records...)
		ext.PageDims[pageNum] = dims
		ext.Dropped += dropped
	}

	sortByDrawOrder(ext.Glyphs)
	return ext, nil
}

// extractPage reads one page's text items. The underlying reader panics
// on malformed content streams, so the page is parsed behind a recover
// and surfaced as an error.
func extractPage(reader *pdf.Reader, pageNum int) (records []glyph.Record, dims overlap.PageDims, dropped int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, dims, 0, fmt.Errorf("page %d is null", pageNum)
	}

	dims = pageDims(page)

	for _, text := range page.Content().Text {
		glyphs, reason := glyphsFromText(text, pageNum)
		if reason != "" {
			dropped++
			slog.Debug("dropping text item", "page", pageNum, "reason", reason)
			continue
		}
		records = append(records, glyphs...)
	}

	return records, dims, dropped, nil
}

// glyphsFromText converts one text item into glyph records. An item
// rendering as more than one grapheme cluster is split per cluster with
// the advance width shared evenly. Items that cannot form a valid
// record are rejected with a reason.
func glyphsFromText(text pdf.Text, pageNum int) ([]glyph.Record, string) {
	ch := norm.NFC.String(text.S)
	if ch == "" {
		return nil, "empty text item"
	}
	if text.FontSize <= 0 {
		return nil, "non-positive font size"
	}
	if text.W < 0 {
		return nil, "negative advance width"
	}

	n := uniseg.GraphemeClusterCount(ch)
	if n == 1 {
		return []glyph.Record{positionRecord(ch, pageNum, text.X, text.W, text)}, ""
	}

	records := make([]glyph.Record, 0, n)
	width := text.W / float64(n)
	g := uniseg.NewGraphemes(ch)
	for i := 0; g.Next(); i++ {
		x := text.X + float64(i)*width
		records = append(records, positionRecord(g.Str(), pageNum, x, width, text))
	}
	return records, ""
}

// positionRecord builds the text-position fallback box: baseline as the
// bottom edge, font size as the height.
func positionRecord(ch string, pageNum int, x, width float64, text pdf.Text) glyph.Record {
	return glyph.Record{
		Char:     ch,
		Page:     pageNum,
		X:        x,
		Y:        text.Y,
		Width:    width,
		Height:   text.FontSize,
		FontSize: text.FontSize,
	}
}

// pageDims reads the page's MediaBox. Pages without a resolvable box
// fall back to US Letter, the same default the rest of the engine uses.
func pageDims(page pdf.Page) overlap.PageDims {
	dims := overlap.PageDims{Width: 612, Height: 792}

	box := page.V.Key("MediaBox")
	if box.Len() != 4 {
		return dims
	}

	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w > 0 && h > 0 {
		dims = overlap.PageDims{Width: w, Height: h}
	}
	return dims
}

// sortByDrawOrder sorts glyphs by page, then top-to-bottom, then
// left-to-right, matching the draw-order contract consumers expect.
func sortByDrawOrder(glyphs []glyph.Record) {
	sort.SliceStable(glyphs, func(i, j int) bool {
		a, b := glyphs[i], glyphs[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.X < b.X
	})
}
