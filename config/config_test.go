package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFromFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.StorePath)
	assert.NotEmpty(t, cfg.LogPath)
	assert.Empty(t, cfg.Shell)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
store_path = "/data/opsbook.db"
shell = "zsh"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/opsbook.db", cfg.StorePath)
	assert.Equal(t, "zsh", cfg.Shell)
	// keys absent from the file keep their default
	assert.Equal(t, defaults().LogPath, cfg.LogPath)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("store_path = [broken"), 0644))

	_, err := loadFromFile(path)
	assert.Error(t, err)
}
