package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, 2, cfg.Reader.Margin)
	assert.Equal(t, 4, cfg.Reader.TabWidth)
	assert.True(t, cfg.Reader.HighlightCode)
	assert.Equal(t, "substring", cfg.Reader.SearchMode)
	assert.Equal(t, 100, cfg.Reader.HistoryLimit)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), "/data")
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, "tokyo-night", cfg.Theme)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
theme: gruvbox
library:
  roots:
    - /books
reader:
  margin: 4
  tab_width: 8
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, []string{"/books"}, cfg.Library.Roots)
	assert.Equal(t, 4, cfg.Reader.Margin)
	assert.Equal(t, 8, cfg.Reader.TabWidth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/data", cfg.DataDir)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative margin", func(c *Config) { c.Reader.Margin = -1 }},
		{"zero tab width", func(c *Config) { c.Reader.TabWidth = 0 }},
		{"huge tab width", func(c *Config) { c.Reader.TabWidth = 99 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"empty include pattern", func(c *Config) { c.Library.Include = []string{""} }},
		{"unknown search mode", func(c *Config) { c.Reader.SearchMode = "regex" }},
		{"negative history limit", func(c *Config) { c.Reader.HistoryLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
