package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erlanggapratamaP/elang-mcp-server/apps/server/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.KeepAlive())
	assert.Equal(t, 64, cfg.ObserverBuffer)
	assert.False(t, cfg.GitHub.AppID != 0)
}

func TestLoadFileWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_GH_BASE", "http://localhost:9090")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
port: "9999"
keepAliveSeconds: 5
github:
  baseUrl: ${TEST_GH_BASE}
  appId: 42
  installationId: 7
  privateKeyPath: /tmp/key.pem
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.KeepAlive())
	assert.Equal(t, "http://localhost:9090", cfg.GitHub.BaseURL)
	assert.Equal(t, int64(42), cfg.GitHub.AppID)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "7070")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9999\"\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestMissingFileIsNotAnError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not: valid"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
