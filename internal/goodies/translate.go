package goodies

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"memobook/internal/config"
	"memobook/internal/logging"
)

// Translator translates short texts through Google's Gemini API.
type Translator struct {
	client *genai.Client
	model  string
}

// NewTranslator creates a translator from config. An API key is required;
// the model falls back to a sensible default.
func NewTranslator(ctx context.Context, cfg config.TranslateConfig) (*Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("translator requires an API key (set GEMINI_API_KEY)")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Translator{client: client, model: model}, nil
}

// Translate renders text in the target language. The model is instructed to
// answer with the translation alone.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("nothing to translate")
	}
	if targetLang == "" {
		targetLang = "English"
	}
	logging.Goodies("Translating %d characters to %s", len(text), targetLang)

	prompt := fmt.Sprintf(
		"Translate the following text to %s. Reply with the translation only, no commentary.\n\n%s",
		targetLang, text,
	)

	result, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}

	translated := strings.TrimSpace(result.Text())
	if translated == "" {
		return "", fmt.Errorf("translator returned an empty response")
	}
	return translated, nil
}
