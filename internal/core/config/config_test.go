package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, uint64(16), cfg.TUI.Cols)
	assert.Equal(t, 4, cfg.TUI.ScrollSpeed)
	assert.True(t, cfg.TUI.ShowText)
	assert.False(t, cfg.Editing.QuickEdit)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
}

func TestLoad_ParsesAndMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
editing:
  quick_edit: true
  sticky_edit: true
tui:
  cols: 32
`), 0o644))

	cfg, err := Load(path, "/tmp/data")
	require.NoError(t, err)

	assert.True(t, cfg.Editing.QuickEdit)
	assert.True(t, cfg.Editing.StickyEdit)
	assert.Equal(t, uint64(32), cfg.TUI.Cols)
	// Unset fields fall back to defaults.
	assert.Equal(t, 4, cfg.TUI.ScrollSpeed)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tui: ["), 0o644))

	_, err := Load(path, "/tmp/data")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/data"
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.DataDir = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.TUI.ScrollSpeed = 0
	assert.Error(t, bad.Validate())
}
