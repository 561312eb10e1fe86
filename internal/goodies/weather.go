// Package goodies implements the external info providers behind the console's
// goodies menu: weather lookup, joke fetch, and translation. None of this
// touches the record store; the presentation layer calls it for display only.
package goodies

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"memobook/internal/config"
	"memobook/internal/logging"
)

// WeatherReport is the subset of the wttr.in response that the console shows.
type WeatherReport struct {
	City        string
	Description string
	TempC       string
	FeelsLikeC  string
	Humidity    string
	WindKmph    string
}

func (r *WeatherReport) String() string {
	return fmt.Sprintf("%s: %s, %s°C (feels like %s°C), humidity %s%%, wind %s km/h",
		r.City, r.Description, r.TempC, r.FeelsLikeC, r.Humidity, r.WindKmph)
}

// WeatherClient fetches current conditions from a wttr.in-style endpoint.
type WeatherClient struct {
	baseURL     string
	defaultCity string
	httpClient  *http.Client
}

// NewWeatherClient builds a client from config. The timeout applies per
// request through the request context.
func NewWeatherClient(cfg config.WeatherConfig) *WeatherClient {
	return &WeatherClient{
		baseURL:     cfg.BaseURL,
		defaultCity: cfg.DefaultCity,
		httpClient: &http.Client{
			Timeout: config.ParseTimeout(cfg.Timeout, 10*time.Second),
		},
	}
}

// wttrResponse mirrors the j1 JSON format of wttr.in.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		FeelsLikeC  string `json:"FeelsLikeC"`
		Humidity    string `json:"humidity"`
		WindKmph    string `json:"windspeedKmph"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

// Current fetches the current weather for city; an empty city falls back to
// the configured default.
func (c *WeatherClient) Current(ctx context.Context, city string) (*WeatherReport, error) {
	if city == "" {
		city = c.defaultCity
	}
	logging.Goodies("Fetching weather for %s", city)

	endpoint := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned %s", resp.Status)
	}

	var payload wttrResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.CurrentCondition) == 0 {
		return nil, fmt.Errorf("weather service returned no conditions for %q", city)
	}

	current := payload.CurrentCondition[0]
	report := &WeatherReport{
		City:       city,
		TempC:      current.TempC,
		FeelsLikeC: current.FeelsLikeC,
		Humidity:   current.Humidity,
		WindKmph:   current.WindKmph,
	}
	if len(current.WeatherDesc) > 0 {
		report.Description = current.WeatherDesc[0].Value
	}
	return report, nil
}
