package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTBOARD_CONFIG_DIR", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.StartSlot)
	require.Equal(t, DefaultLogLevel, cfg.Log.Level)
	require.Equal(t, DefaultWebAddr, cfg.Web.Addr)

	dataDir, err := cfg.ResolveDataDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "data"), dataDir)
}

func TestLoadConfig_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTBOARD_CONFIG_DIR", dir)

	data := []byte(`
data_dir: /tmp/pb-data
start_slot: 3
log:
  level: debug
tui:
  theme: Dark
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.StartSlot)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "dark", cfg.TUI.Theme)
	require.Equal(t, DefaultWebAddr, cfg.Web.Addr)

	dataDir, err := cfg.ResolveDataDir()
	require.NoError(t, err)
	require.Equal(t, "/tmp/pb-data", dataDir)
}

func TestLoadConfig_InvalidStartSlotIsReset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTBOARD_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("start_slot: 42\n"), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.StartSlot)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPTBOARD_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed\n"), 0o644))

	_, err := LoadConfig()
	require.Error(t, err)
}
