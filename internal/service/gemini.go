package service

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"surveyflow/internal/config"
)

// GeminiGenerator implements Generator with the Gemini API, asking for JSON output
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for cfg. baseURL overrides the API endpoint when non-empty.
func NewGeminiGenerator(ctx context.Context, cfg *config.AIConfig, baseURL string) (*GeminiGenerator, error) {
	if !cfg.IsEnabled() {
		return nil, ErrConversionDisabled
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiGenerator{client: client, model: cfg.Model}, nil
}

// Generate returns the text of the first candidate
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("GenAI returned no text")
	}
	return text, nil
}

// Model returns the configured model name
func (g *GeminiGenerator) Model() string { return g.model }
