package config

import "time"

// GoodiesConfig configures the external info providers. None of these touch
// the record store; they exist purely for the console's goodies menu.
type GoodiesConfig struct {
	Weather   WeatherConfig   `yaml:"weather"`
	Jokes     JokesConfig     `yaml:"jokes"`
	Translate TranslateConfig `yaml:"translate"`
}

// WeatherConfig configures the weather lookup.
type WeatherConfig struct {
	BaseURL     string `yaml:"base_url"`
	DefaultCity string `yaml:"default_city"`
	Timeout     string `yaml:"timeout"`
}

// JokesConfig configures the joke fetch.
type JokesConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// TranslateConfig configures the GenAI-backed translator.
type TranslateConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// ParseTimeout parses a duration string with a fallback for empty or
// malformed values.
func ParseTimeout(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
