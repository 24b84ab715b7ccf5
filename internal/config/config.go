package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or a field is absent.
const (
	DefaultBaseURL        = "http://localhost:5000"
	DefaultTimeoutSeconds = 30
	DefaultLogLevel       = "info"
)

// ServiceConfig points the dashboard at the fleet analytics service.
type ServiceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the full fleetfocus configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Logging LoggingConfig `yaml:"logging"`
}

// Timeout returns the service timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}

// DefaultPath returns the default config file location
// ($HOME/.fleetfocus/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fleetfocus", "config.yaml")
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads the config file at path (or the default path when empty) and
// applies environment overrides. A missing file is not an error; defaults
// are used. Precedence: defaults < file < environment. CLI flags are
// applied by the caller on top of the returned value.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No config file is fine; run on defaults.
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Service.BaseURL == "" {
		cfg.Service.BaseURL = DefaultBaseURL
	}
	if cfg.Service.TimeoutSeconds <= 0 {
		cfg.Service.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}

	return cfg, nil
}

// applyEnv overlays FLEETFOCUS_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FLEETFOCUS_API_URL"); v != "" {
		cfg.Service.BaseURL = v
	}
	if v := os.Getenv("FLEETFOCUS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FLEETFOCUS_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}
