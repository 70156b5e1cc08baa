package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/glyphmark/glyphmark/internal/pdf"
)

// discoverDocuments finds all documents matching the given patterns.
// Already-marked copies are always skipped so re-running the scanner
// over its own outputs is safe.
func discoverDocuments(args []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var docs []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			files, err := discoverInDirectory(arg, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			docs = append(docs, files...)
		} else if shouldIncludeFile(arg, includePatterns, excludePatterns) {
			docs = append(docs, arg)
		}
	}

	sort.Strings(docs)
	return docs, nil
}

// discoverInDirectory discovers documents in a directory, optionally
// recursing into subdirectories.
func discoverInDirectory(dir string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		if shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}

		return nil
	}

	return files, filepath.Walk(dir, walkFn)
}

// shouldIncludeFile determines if a file should be processed based on
// the marked-copy rule and the include/exclude patterns.
func shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if pdf.IsMarked(path) {
		return false
	}

	if matchesAnyPattern(path, excludePatterns) {
		return false
	}

	if len(includePatterns) == 0 {
		return true
	}

	return matchesAnyPattern(path, includePatterns)
}

// matchesAnyPattern checks if a file's base name matches any of the
// given glob patterns.
func matchesAnyPattern(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
