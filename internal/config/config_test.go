package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.CORSOrigins)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
  cors_origins:
    - http://localhost:3000
database:
  path: /tmp/eco-test.db
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/tmp/eco-test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0600))

	t.Setenv("ECOCOACH_ADDR", ":7070")
	t.Setenv("ECOCOACH_DB_PATH", "/tmp/env.db")
	t.Setenv("ECOCOACH_LOG_LEVEL", "warn")
	t.Setenv("ECOCOACH_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "debug", got.Level)
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, "stderr", got.Output)

	lc.File = "/tmp/eco.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, "/tmp/eco.log", got.File)
}

func TestGlobal(t *testing.T) {
	// Unset state falls back to defaults.
	SetGlobal(nil)
	assert.Equal(t, ":8080", Global().Server.Addr)

	cfg := Default()
	cfg.Server.Addr = ":6060"
	SetGlobal(cfg)
	t.Cleanup(func() { SetGlobal(nil) })

	assert.Equal(t, ":6060", Global().Server.Addr)
}
