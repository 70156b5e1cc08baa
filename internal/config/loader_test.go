package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	return &Loader{v: viper.New()}
}

func TestLoaderDefaults(t *testing.T) {
	// No config file on the search path: defaults apply.
	cfg, err := newTestLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1.0, cfg.Analysis.TrimScale)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Batch.ContinueOnError)
}

func TestLoaderWithFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "glyphmark.yaml")
	content := `
log_level: debug
analysis:
  trim_whitespace: true
  trim_scale: 0.5
  union_threshold: 10
  threshold: 5
output:
  json: true
  format: csv
batch:
  workers: 4
  recursive: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o600))

	cfg, err := newTestLoader().LoadWithFile(configFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Analysis.TrimWhitespace)
	assert.Equal(t, 0.5, cfg.Analysis.TrimScale)
	assert.Equal(t, 10.0, cfg.Analysis.UnionThreshold)
	assert.Equal(t, 5, cfg.Analysis.Threshold)
	assert.True(t, cfg.Output.JSON)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.True(t, cfg.Batch.Recursive)

	// Keys the file omits keep their defaults.
	assert.True(t, cfg.Output.Labels)
	assert.Equal(t, []string{"*.pdf"}, cfg.Batch.Include)
}

func TestLoaderWithMissingFile(t *testing.T) {
	_, err := newTestLoader().LoadWithFile("/no/such/glyphmark.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoaderRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "glyphmark.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log_level: bogus\n"), 0o600))

	_, err := newTestLoader().LoadWithFile(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/glyphmark")
}
