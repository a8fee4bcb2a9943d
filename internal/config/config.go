// Package config loads and holds the ecocoach configuration: HTTP server
// settings, database location, CORS origins, and logging options. The
// configuration is YAML on disk with ECOCOACH_* environment overrides,
// merged over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dayimpact/ecocoach/internal/logging"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"`

	// CORSOrigins lists allowed cross-origin request origins for the
	// web frontend. An empty list allows all origins.
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	// Path is the sqlite database file path. The parent directory is
	// created on first open.
	Path string `yaml:"path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration: local server, sqlite file
// under the user data directory, info-level console logging.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Path: defaultDatabasePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error; the defaults
// plus environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, unmarshalErr)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides maps ECOCOACH_* environment variables onto cfg.
// Environment wins over file values, CLI flags win over both (applied by
// the caller).
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ECOCOACH_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ECOCOACH_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ECOCOACH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ECOCOACH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// ToLoggingConfig bridges the configuration to the logging package.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := "stderr"
	if lc.File != "" {
		output = "file"
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// defaultDatabasePath places the database under the OS user config dir,
// falling back to the working directory when that cannot be resolved.
func defaultDatabasePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "ecocoach.db"
	}
	return filepath.Join(base, "ecocoach", "ecocoach.db")
}

// global holds the process-wide configuration set at startup.
var (
	global   *Config      //nolint:gochecknoglobals // Set once at startup, read by commands
	globalMu sync.RWMutex //nolint:gochecknoglobals // Protects global
)

// SetGlobal stores cfg as the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = cfg
}

// Global returns the process-wide configuration, or the defaults when
// SetGlobal was never called.
func Global() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if global == nil {
		return Default()
	}
	return global
}
