package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides (BATTERY_SERVER_PORT -> server.port)
const EnvPrefix = "BATTERY_"

// Config holds all configuration for battery-guide
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Site     SiteConfig     `koanf:"site"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// DataConfig points at the battery JSON tree
type DataConfig struct {
	Dir string `koanf:"dir"`
}

// SiteConfig holds public site settings
type SiteConfig struct {
	BaseURL string `koanf:"base_url"`
}

// DatabaseConfig holds PostgreSQL configuration for catalog exports.
// An empty DSN disables the export; a zero ExportInterval leaves exporting
// to the export command.
type DatabaseConfig struct {
	DSN            string        `koanf:"dsn"`
	MaxConns       int           `koanf:"max_conns"`
	Schema         string        `koanf:"schema"`
	ExportInterval time.Duration `koanf:"export_interval"`
}

// RedisConfig holds Redis configuration for search analytics.
// An empty address disables analytics.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `koanf:"level"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Site: SiteConfig{
			BaseURL: "https://batteries.guide",
		},
		Database: DatabaseConfig{
			MaxConns: 5,
			Schema:   "public",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from defaults, then the YAML file at path if it
// exists, then BATTERY_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// envKey maps BATTERY_SITE_BASE_URL to site.base_url: the first underscore
// separates the section, the rest belong to the key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("data dir is required")
	}

	if !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("invalid site base url: %q", c.Site.BaseURL)
	}

	if c.Database.MaxConns < 0 {
		return fmt.Errorf("database max_conns must be non-negative")
	}

	if c.Database.ExportInterval < 0 {
		return fmt.Errorf("database export_interval must be non-negative")
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel converts a level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}
