package goodies

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"memobook/internal/config"
	"memobook/internal/logging"
)

// Joke is a two-part joke from an official-joke-api-style endpoint.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

func (j *Joke) String() string {
	return fmt.Sprintf("%s\n... %s", j.Setup, j.Punchline)
}

// JokeClient fetches random jokes.
type JokeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewJokeClient builds a client from config.
func NewJokeClient(cfg config.JokesConfig) *JokeClient {
	return &JokeClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: config.ParseTimeout(cfg.Timeout, 10*time.Second),
		},
	}
}

// Random fetches a random joke.
func (c *JokeClient) Random(ctx context.Context) (*Joke, error) {
	logging.Goodies("Fetching a joke")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/random_joke", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build joke request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("joke request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("joke service returned %s", resp.Status)
	}

	var joke Joke
	if err := json.NewDecoder(resp.Body).Decode(&joke); err != nil {
		return nil, fmt.Errorf("failed to decode joke response: %w", err)
	}
	if joke.Setup == "" {
		return nil, fmt.Errorf("joke service returned an empty joke")
	}
	return &joke, nil
}
