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

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, "https://batteries.guide", cfg.Site.BaseURL)
	assert.Empty(t, cfg.Database.DSN)
	assert.Empty(t, cfg.Redis.Address)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery-guide.yaml")
	content := `
server:
  port: 9090
data:
  dir: /srv/batteries
site:
  base_url: https://staging.batteries.guide
redis:
  address: localhost:6379
database:
  export_interval: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "/srv/batteries", cfg.Data.Dir)
	assert.Equal(t, "https://staging.batteries.guide", cfg.Site.BaseURL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 15*time.Minute, cfg.Database.ExportInterval)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery-guide.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("BATTERY_SERVER_PORT", "7070")
	t.Setenv("BATTERY_SITE_BASE_URL", "http://localhost:7070")
	t.Setenv("BATTERY_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://localhost:7070", cfg.Site.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"empty data dir", func(c *Config) { c.Data.Dir = "" }},
		{"relative base url", func(c *Config) { c.Site.BaseURL = "batteries.guide" }},
		{"negative conns", func(c *Config) { c.Database.MaxConns = -1 }},
		{"negative export interval", func(c *Config) { c.Database.ExportInterval = -time.Second }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("BATTERY_SERVER_PORT"))
	assert.Equal(t, "site.base_url", envKey("BATTERY_SITE_BASE_URL"))
	assert.Equal(t, "database.max_conns", envKey("BATTERY_DATABASE_MAX_CONNS"))
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
}
