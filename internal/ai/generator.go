// Package ai is the boundary to the external text generation service.
// It exposes a single Generate capability plus typed parsing of the
// structured responses the engine expects.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Generator produces free text from a prompt. Implementations call out to a
// network service; failures are returned as errors and never panic.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OllamaGenerator calls an Ollama-compatible /api/generate endpoint.
type OllamaGenerator struct {
	client *resty.Client
	model  string
}

// NewOllamaGenerator creates a generator for the given base URL and model.
func NewOllamaGenerator(baseURL, model string, timeout time.Duration) *OllamaGenerator {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &OllamaGenerator{client: c, model: model}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate sends the prompt and returns the raw response text.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("empty prompt")
	}

	var out generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(&generateRequest{Model: g.model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("generate status %d", resp.StatusCode())
	}
	if out.Error != "" {
		return "", fmt.Errorf("generate error: %s", out.Error)
	}
	return out.Response, nil
}

// GeneratorFunc adapts a plain function to the Generator interface.
// Tests use this to substitute canned responses.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
