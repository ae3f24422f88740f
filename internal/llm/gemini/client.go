// Package gemini implements llm.Provider on Google's hosted Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/telemetry"
	"darzi-backend/internal/shared/util"
)

const defaultModel = "gemini-1.5-flash"

// Client talks to one Gemini model. A client without credentials is
// still constructible; it just reports itself unavailable so the
// manager skips it.
type Client struct {
	client *genai.Client
	model  string
}

// New builds a Gemini-backed provider. A missing key or failed SDK init
// leaves the provider unavailable instead of failing startup.
func New(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	c := &Client{model: model}

	if strings.TrimSpace(apiKey) == "" {
		telemetry.Warn("gemini.disabled", map[string]any{"reason": "no API key configured"})
		return c
	}
	sdk, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		telemetry.Error("gemini.init_failed", map[string]any{
			"error": err.Error(),
			"key":   util.RedactKey(apiKey),
		})
		return c
	}
	c.client = sdk
	telemetry.Info("gemini.ready", map[string]any{
		"model": model,
		"key":   util.RedactKey(apiKey),
	})
	return c
}

// Name returns the provider label, e.g. "Gemini (gemini-1.5-flash)".
func (c *Client) Name() string {
	return fmt.Sprintf("Gemini (%s)", c.model)
}

// Available reports whether the SDK client was initialized.
func (c *Client) Available() bool {
	return c.client != nil
}

// GenerateText sends one prompt and returns the raw model text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", llm.ErrUnavailable
	}

	temp := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 4096,
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %v", llm.ErrTimeout, err)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", llm.ErrInvalidResponse)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", llm.ErrInvalidResponse)
	}
	return text, nil
}

var _ llm.Provider = (*Client)(nil)
