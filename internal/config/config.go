// Package config holds memobook's YAML configuration: where the snapshot
// database lives, how the goodies providers are reached, and how logging
// behaves. Missing files fall back to defaults; environment variables win
// over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all memobook configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Snapshot storage
	Storage StorageConfig `yaml:"storage"`

	// External info providers (weather, jokes, translation)
	Goodies GoodiesConfig `yaml:"goodies"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig configures the snapshot store.
type StorageConfig struct {
	// DatabasePath is where the SQLite snapshot lives.
	DatabasePath string `yaml:"database_path"`

	// WatchSnapshot enables reloading the interactive view when another
	// process rewrites the snapshot.
	WatchSnapshot bool `yaml:"watch_snapshot"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Name:    "memobook",
		Version: "1.0.0",

		Storage: StorageConfig{
			DatabasePath:  filepath.Join(home, ".memobook", "memobook.db"),
			WatchSnapshot: true,
		},

		Goodies: GoodiesConfig{
			Weather: WeatherConfig{
				BaseURL:     "https://wttr.in",
				DefaultCity: "Kyiv",
				Timeout:     "10s",
			},
			Jokes: JokesConfig{
				BaseURL: "https://official-joke-api.appspot.com",
				Timeout: "10s",
			},
			Translate: TranslateConfig{
				Model: "gemini-2.0-flash",
			},
		},

		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".memobook", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults rather than an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides lets the environment win over file values.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("MEMOBOOK_DATA"); path != "" {
		c.Storage.DatabasePath = path
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Goodies.Translate.APIKey = key
	}
	if city := os.Getenv("MEMOBOOK_CITY"); city != "" {
		c.Goodies.Weather.DefaultCity = city
	}
}
