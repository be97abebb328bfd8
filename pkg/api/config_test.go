package api

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
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", ":8080")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(":8080"), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
max_sources: 8
max_cells: 1000
request_timeout: 2s
cors_origin: "*"
`)
	cfg, err := LoadConfig(path, ":8080")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 8, cfg.MaxSources)
	assert.Equal(t, int64(1000), cfg.MaxCells)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "*", cfg.CORSOrigin)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultConfig("").MaxBodyBytes, cfg.MaxBodyBytes)
	assert.Equal(t, 500.0, cfg.SnapRadius)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""), ":8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "max_source: 8\n"), ":8080")
	require.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "max_sources: 0\n"), ":8080")
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "request_timeout: -1s\n"), ":8080")
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "max_cells: 0\n"), ":8080")
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), ":8080")
	require.ErrorIs(t, err, os.ErrNotExist)
}
