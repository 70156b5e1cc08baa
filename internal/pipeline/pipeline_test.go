package pipeline

import (
	"testing"

	"github.com/glyphmark/glyphmark/internal/glyph"
	"github.com/glyphmark/glyphmark/internal/overlap"
	"github.com/glyphmark/glyphmark/internal/testutil"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero value", Options{}, false},
		{"typical", Options{TrimWhitespace: true, TrimScale: 1.0, UnionThresholdPct: 10, Threshold: 5}, false},
		{"negative trim scale", Options{TrimScale: -1}, true},
		{"union threshold over 100", Options{UnionThresholdPct: 101}, true},
		{"negative union threshold", Options{UnionThresholdPct: -0.1}, true},
		{"negative marking threshold", Options{Threshold: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	if _, err := New(Options{TrimScale: -1}); err == nil {
		t.Error("expected error for invalid options")
	}
}

func TestNewDefaultsWatermarkPolicy(t *testing.T) {
	p, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if p.opts.Watermark == (glyph.WatermarkPolicy{}) {
		t.Error("zero watermark policy must be replaced with the default")
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	p, err := New(Options{Labels: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	glyphs := []glyph.Record{
		testutil.Glyph("a", 0, 0, 10, 10),
		testutil.Glyph("b", 5, 5, 10, 10),
		testutil.Glyph("c", 100, 100, 10, 10), // isolated
		testutil.GlyphWithSize("X", 45),       // watermark, filtered out
	}
	dims := map[int]overlap.PageDims{1: {Width: 612, Height: 792}}
	meta := overlap.Metadata{File: "doc.pdf", Path: "doc.pdf"}

	a := p.Analyze(glyphs, dims, meta)

	if a.Report.TotalOverlaps != 1 {
		t.Fatalf("expected 1 overlap, got %d", a.Report.TotalOverlaps)
	}
	if a.Report.FilteredWatermarks != 1 {
		t.Errorf("expected 1 filtered watermark, got %d", a.Report.FilteredWatermarks)
	}
	if a.Report.TrimmedBoxes != 0 {
		t.Errorf("trimming disabled, expected 0 trimmed boxes, got %d", a.Report.TrimmedBoxes)
	}
	if got := len(a.Rects[1]); got != 2 {
		t.Errorf("expected 2 involved rects, got %d", got)
	}
	if len(a.Labels) != 1 {
		t.Errorf("expected 1 region label, got %d", len(a.Labels))
	}
}

func TestAnalyzeLabelsDisabled(t *testing.T) {
	p, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	glyphs := []glyph.Record{
		testutil.Glyph("a", 0, 0, 10, 10),
		testutil.Glyph("b", 5, 5, 10, 10),
	}

	a := p.Analyze(glyphs, nil, overlap.Metadata{File: "doc.pdf", Path: "doc.pdf"})
	if a.Labels != nil {
		t.Errorf("labels disabled, got %v", a.Labels)
	}
}

func TestAnalyzeTrimmingResolvesFalsePositives(t *testing.T) {
	// Two boxes with a sliver of overlap that the trim pass removes.
	glyphs := []glyph.Record{
		testutil.Glyph("a", 0, 0, 10, 10),
		testutil.Glyph("b", 9.5, 0, 10, 10),
	}
	meta := overlap.Metadata{File: "doc.pdf", Path: "doc.pdf"}

	untrimmedPipeline, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := untrimmedPipeline.Analyze(glyphs, nil, meta).Report.TotalOverlaps; got != 1 {
		t.Fatalf("expected 1 overlap without trimming, got %d", got)
	}

	trimmedPipeline, err := New(Options{TrimWhitespace: true, TrimScale: 1.0})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	a := trimmedPipeline.Analyze(glyphs, nil, meta)
	if a.Report.TotalOverlaps != 0 {
		t.Errorf("expected trimming to remove the sliver overlap, got %d", a.Report.TotalOverlaps)
	}
	if a.Report.TrimmedBoxes != 2 {
		t.Errorf("expected 2 trimmed boxes, got %d", a.Report.TrimmedBoxes)
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	p, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	a := p.Analyze(nil, nil, overlap.Metadata{File: "empty.pdf", Path: "empty.pdf"})

	if a.Report == nil {
		t.Fatal("empty input must still produce a report")
	}
	if a.Report.TotalOverlaps != 0 || len(a.Report.Overlaps) != 0 {
		t.Errorf("unexpected overlaps for empty input: %+v", a.Report)
	}
}

func TestOutputPath(t *testing.T) {
	p, err := New(Options{OutputDir: "/out"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := p.outputPath("/data/doc_marked.pdf"); got != "/out/doc_marked.pdf" {
		t.Errorf("expected redirect into output dir, got %q", got)
	}

	plain, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := plain.outputPath("/data/doc_marked.pdf"); got != "/data/doc_marked.pdf" {
		t.Errorf("expected path unchanged, got %q", got)
	}
}
