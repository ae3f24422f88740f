// Package openai implements llm.Provider on the OpenAI Chat Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/telemetry"
	"darzi-backend/internal/shared/util"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Client talks to one OpenAI chat model. Like the Gemini provider it is
// constructible without credentials; it just reports itself unavailable
// so the manager skips it.
type Client struct {
	key     string
	model   string
	baseURL string
	http    *http.Client
}

// New builds an OpenAI-backed provider. A missing key leaves the
// provider unavailable instead of failing startup.
func New(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	c := &Client{
		key:     strings.TrimSpace(apiKey),
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
	if c.key == "" {
		telemetry.Warn("openai.disabled", map[string]any{"reason": "no API key configured"})
		return c
	}
	telemetry.Info("openai.ready", map[string]any{
		"model": model,
		"key":   util.RedactKey(c.key),
	})
	return c
}

// Name returns the provider label, e.g. "OpenAI (gpt-4o-mini)".
func (c *Client) Name() string {
	return fmt.Sprintf("OpenAI (%s)", c.model)
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c.key != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateText sends one prompt as a single user message and returns
// the raw model text. No response_format is forced; the same call path
// serves both JSON parsing prompts and LaTeX generation prompts.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.key == "" {
		return "", llm.ErrUnavailable
	}

	temp := float32(0.3)
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: &temp,
		MaxTokens:   4096,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("%w: %v", llm.ErrTimeout, err)
		}
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai response read: %w", err)
	}

	// OpenAI reports failures as a JSON error object, on non-200
	// statuses included, so decode before checking the status code.
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: status %d with non-JSON body", llm.ErrInvalidResponse, resp.StatusCode)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: missing choices", llm.ErrInvalidResponse)
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", llm.ErrInvalidResponse)
	}
	return text, nil
}

var _ llm.Provider = (*Client)(nil)
