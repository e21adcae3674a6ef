package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	assert.Equal(t, "/tmp/cfg/zenflow/config.toml", DefaultConfigPath())
	assert.Equal(t, "/tmp/data/zenflow/zenflow.db", DefaultDBPath())
	assert.Equal(t, "/tmp/data/zenflow/zenflow.log", DefaultLogPath())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 5*time.Second, cfg.Refresh)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
path = "/var/lib/zenflow.db"

[log]
level = "debug"
file = ""

[refresh]
seconds = 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/zenflow.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.Refresh)
}

func TestLoadPartialFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	path := writeConfig(t, "[log]\nlevel = \"warn\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/data/zenflow/zenflow.db", cfg.DBPath)
	assert.Equal(t, "/tmp/data/zenflow/zenflow.log", cfg.LogFile)
}

func TestLoadRejectsBadRefresh(t *testing.T) {
	path := writeConfig(t, "[refresh]\nseconds = 0\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeConfig(t, "[storage\npath = 1")
	_, err := Load(path)
	assert.ErrorContains(t, err, "decode config")
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}
