package pdf

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/glyphmark/glyphmark/internal/glyph"
	"github.com/glyphmark/glyphmark/internal/overlap"
)

const markedSuffix = "_marked"

// Annotator renders a marked copy of a document: one semi-transparent
// red square per involved glyph plus optional region-count labels. All
// original content is preserved; overlays are merged on top.
type Annotator struct {
	fill    color.SimpleColor
	opacity float64
}

// NewAnnotator returns the default annotator: red squares at 30% alpha.
func NewAnnotator() *Annotator {
	return &Annotator{
		fill:    color.SimpleColor{R: 1, G: 0, B: 0},
		opacity: 0.3,
	}
}

// MarkedPath returns the output name for a marked copy: the original
// name with the marked suffix before the extension.
func MarkedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + markedSuffix + ext
}

// IsMarked reports whether the path already names a marked copy, so
// batch discovery can skip re-processing outputs.
func IsMarked(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(base, markedSuffix)
}

// pdfcpu stamp anchors for the nine page regions.
var regionAnchors = map[overlap.Region]string{
	overlap.RegionTopLeft:      "tl",
	overlap.RegionTopCenter:    "tc",
	overlap.RegionTopRight:     "tr",
	overlap.RegionMiddleLeft:   "l",
	overlap.RegionMiddleCenter: "c",
	overlap.RegionMiddleRight:  "r",
	overlap.RegionBottomLeft:   "bl",
	overlap.RegionBottomCenter: "bc",
	overlap.RegionBottomRight:  "br",
}

// Annotate writes a marked copy of inPath to outPath with one square
// annotation per rectangle and one text label per entry in labels.
func (a *Annotator) Annotate(inPath, outPath string, rects map[int][]glyph.Rect, labels []overlap.Label) error {
	anns := make(map[int][]model.AnnotationRenderer, len(rects))
	for page, pageRects := range rects {
		for _, r := range pageRects {
			anns[page] = append(anns[page], a.squareAnnotation(r))
		}
	}

	if err := api.AddAnnotationsMapFile(inPath, outPath, anns, nil, false); err != nil {
		return fmt.Errorf("failed to add overlap annotations to %q: %w", inPath, err)
	}

	for _, l := range labels {
		if err := a.stampLabel(outPath, l); err != nil {
			return err
		}
	}
	return nil
}

// squareAnnotation builds one semi-transparent filled square.
func (a *Annotator) squareAnnotation(r glyph.Rect) model.AnnotationRenderer {
	rect := types.RectForWidthAndHeight(r.X, r.Y, r.Width, r.Height)
	ca := a.opacity

	return model.NewSquareAnnotation(
		*rect,
		"", "", "", // contents, id, modDate
		0,          // flags
		&a.fill,    // border color
		"",         // title
		nil,        // popup annotation ref
		&ca,        // opacity
		"", "",     // rich text, subject
		&a.fill,    // fill color
		0, 0, 0, 0, // margins
		0, // border width
		model.BSSolid,
		false, // cloudy border
		0,
	)
}

// stampLabel draws one "region: count" text stamp anchored at the
// region's canonical position on the label's page.
func (a *Annotator) stampLabel(path string, l overlap.Label) error {
	anchor, ok := regionAnchors[l.Region]
	if !ok {
		return fmt.Errorf("unknown region %q", l.Region)
	}

	desc := fmt.Sprintf("points:10, pos:%s, off:10 10, fillc:#0000ff, op:0.7, rot:0, scale:1 abs", anchor)
	wm, err := api.TextWatermark(fmt.Sprintf("%s: %d", l.Region, l.Count), desc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to build label for %s: %w", l.Region, err)
	}

	pages := []string{strconv.Itoa(l.Page)}
	if err := api.AddWatermarksFile(path, "", pages, wm, nil); err != nil {
		return fmt.Errorf("failed to stamp label on page %d of %q: %w", l.Page, path, err)
	}
	return nil
}
