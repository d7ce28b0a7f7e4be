package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.Analysis.IncludeArchitecture)
	assert.True(t, cfg.Analysis.IncludeSuggestions)
	assert.False(t, cfg.Analysis.IncludeCode)
	assert.False(t, cfg.Analysis.IncludeDependencies)
	assert.Equal(t, int64(10000), cfg.Analysis.MaxFileSize)
	assert.Equal(t, 50, cfg.Analysis.MaxFiles)
}

func TestLoadOverridesKeepUnsetDefaults(t *testing.T) {
	dir := t.TempDir()
	body := "analysis:\n  include_code: true\n  max_files: 10\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.True(t, cfg.Analysis.IncludeCode)
	assert.Equal(t, 10, cfg.Analysis.MaxFiles)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Analysis.IncludeArchitecture)
	assert.Equal(t, int64(10000), cfg.Analysis.MaxFileSize)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("analysis: [broken\n"), 0o644))

	_, err := LoadFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestOptionsRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.IncludeDependencies = true
	cfg.Analysis.MaxFiles = 5

	opts := cfg.Options()
	assert.True(t, opts.IncludeDependencies)
	assert.Equal(t, 5, opts.MaxFiles)
	assert.True(t, opts.IncludeArchitecture)
}
