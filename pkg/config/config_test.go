package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: http://127.0.0.1:9000/registration
timeout: 3s
output: pretty
log_level: debug
`), 0o644))

	t.Setenv("REGFORM_LISTEN", "0.0.0.0:9999")
	t.Setenv("REGFORM_OUTPUT", "form")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/registration", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "0.0.0.0:9999", cfg.Listen)
	assert.Equal(t, "form", cfg.Output, "environment wins over file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Defaults().Renderer, cfg.Renderer)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regform.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"renderer":"tui","registrar_listen":"127.0.0.1:7000"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tui", cfg.Renderer)
	assert.Equal(t, "127.0.0.1:7000", cfg.RegistrarListen)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Endpoint = " "
	cfg.Timeout = 0
	cfg.Output = "xml"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"endpoint is required", "timeout must be positive", "output must be", "log_level"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regform.yaml")
	require.NoError(t, WriteDefault(path))
	require.Error(t, WriteDefault(path), "existing file must not be overwritten")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 10s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}
