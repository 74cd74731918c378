package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Config holds Gemini client configuration.
type Config struct {
	APIKey string
	Model  string
	// Timeout bounds every Generate call. A model that stops responding
	// surfaces as an error instead of blocking the request forever.
	Timeout time.Duration
}

// DefaultConfig returns the default Gemini configuration for the given
// API key, using the "fast" preset's model.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   ModelID(DefaultPreset),
		Timeout: 2 * time.Minute,
	}
}

// Gemini implements Client using Google's Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed oracle client.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle: API key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = ModelID(DefaultPreset)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("oracle: create client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Generate sends the prompt to the model and returns its raw text reply.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("oracle: generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("oracle: empty response from model %s", g.model)
	}
	return text, nil
}

// Model returns the configured model id.
func (g *Gemini) Model() string {
	return g.model
}
