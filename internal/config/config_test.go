package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.Limits.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow())
	assert.Equal(t, int64(25<<20), cfg.Limits.SingleFileMaxBytes)
	assert.Equal(t, int64(20<<20), cfg.Limits.MultiFileMaxBytes)
	assert.Equal(t, 10, cfg.Limits.MaxMergeFiles)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.NotEmpty(t, cfg.Convert.SofficePath)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}

func TestLoadConfig_PartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convertd.yaml")
	body := `
server:
  port: 9999
limits:
  rate_limit: 3
  rate_window_seconds: 10
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Limits.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.RateWindow())
	// Untouched sections keep their defaults.
	assert.Equal(t, int64(25<<20), cfg.Limits.SingleFileMaxBytes)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_SofficeEnvOverride(t *testing.T) {
	t.Setenv(EnvSofficePath, "/opt/libreoffice/program/soffice")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/libreoffice/program/soffice", cfg.Convert.SofficePath)
}

func TestEnsureDirectories(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Convert.ScratchDirectory = filepath.Join(t.TempDir(), "nested", "scratch")

	require.NoError(t, cfg.EnsureDirectories())
	info, err := os.Stat(cfg.Convert.ScratchDirectory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
