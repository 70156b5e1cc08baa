package batch

import (
	"strings"
	"testing"
)

func TestProcessBatchNoDocuments(t *testing.T) {
	dir := t.TempDir()

	_, err := ProcessBatch([]string{dir}, &Config{})
	if err == nil || !strings.Contains(err.Error(), "no documents found") {
		t.Errorf("expected no-documents error, got %v", err)
	}
}

func TestProcessBatchMissingPath(t *testing.T) {
	_, err := ProcessBatch([]string{"/no/such/dir"}, &Config{})
	if err == nil || !strings.Contains(err.Error(), "failed to discover documents") {
		t.Errorf("expected discovery error, got %v", err)
	}
}

func TestProcessBatchInvalidPipelineOptions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir+"/a.pdf")

	cfg := &Config{}
	cfg.Pipeline.TrimScale = -1

	_, err := ProcessBatch([]string{dir}, cfg)
	if err == nil || !strings.Contains(err.Error(), "invalid pipeline options") {
		t.Errorf("expected options validation error, got %v", err)
	}
}

func TestProcessBatchContinueOnError(t *testing.T) {
	dir := t.TempDir()
	// Not a real PDF: extraction fails per file.
	touch(t, dir+"/broken.pdf")

	cfg := &Config{ContinueOnError: true, Workers: 1}
	result, err := ProcessBatch([]string{dir}, cfg)
	if err != nil {
		t.Fatalf("continue-on-error must not fail the batch: %v", err)
	}

	stats := result.Stats()
	if stats.Total != 1 || stats.Failed != 1 {
		t.Errorf("expected 1 failed document, got %+v", stats)
	}
}

func TestProcessBatchFailFast(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir+"/broken.pdf")

	cfg := &Config{ContinueOnError: false, Workers: 1}
	if _, err := ProcessBatch([]string{dir}, cfg); err == nil {
		t.Error("expected the first file error to fail the batch")
	}
}
