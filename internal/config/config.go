package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Poll    PollConfig    `yaml:"poll"`
	Session SessionConfig `yaml:"session"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// PollConfig controls the dashboard refresh loop.
type PollConfig struct {
	Interval Duration `yaml:"interval"`
}

// SessionConfig locates the persisted credential.
type SessionConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig locates the warm-start snapshot database.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("DECK_CONFIG_PATH", defaultConfigPath())

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8081",
			Timeout: Duration(30 * time.Second),
		},
		Poll: PollConfig{
			Interval: Duration(30 * time.Second),
		},
		Session: SessionConfig{
			Path: filepath.Join(configDir(), "session.json"),
		},
		Cache: CacheConfig{
			Path: filepath.Join(configDir(), "cache.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// configDir is the per-user configuration directory, ~/.assistdeck by default.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".assistdeck"
	}
	return filepath.Join(home, ".assistdeck")
}

func defaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DECK_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("DECK_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("DECK_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Poll.Interval = Duration(d)
		}
	}
	if v := os.Getenv("DECK_SESSION_PATH"); v != "" {
		cfg.Session.Path = v
	}
	if v := os.Getenv("DECK_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("DECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DECK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// validate checks that required configuration values are set.
func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if time.Duration(c.API.Timeout) <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if time.Duration(c.Poll.Interval) <= 0 {
		return errors.New("poll.interval must be positive")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
