// Package testutil provides shared helpers for building glyph fixtures
// in tests.
package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/glyphmark/glyphmark/internal/glyph"
)

// GetProjectRoot returns the project root directory by finding go.mod.
func GetProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("failed to get caller information")
	}
	dir := filepath.Dir(filename)

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find go.mod file starting from %s", filepath.Dir(filename))
}

// Glyph builds a record with sensible defaults for tests: 12pt font on
// page 1.
func Glyph(ch string, x, y, w, h float64) glyph.Record {
	return glyph.Record{Char: ch, Page: 1, X: x, Y: y, Width: w, Height: h, FontSize: 12}
}

// GlyphOnPage builds a record on a specific page.
func GlyphOnPage(ch string, page int, x, y, w, h float64) glyph.Record {
	g := Glyph(ch, x, y, w, h)
	g.Page = page
	return g
}

// GlyphWithSize builds a record with a specific font size.
func GlyphWithSize(ch string, fontSize float64) glyph.Record {
	g := Glyph(ch, 0, 0, fontSize*0.6, fontSize)
	g.FontSize = fontSize
	return g
}
