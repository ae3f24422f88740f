package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"darzi-backend/internal/resume"
	"darzi-backend/internal/shared/metrics"
	"darzi-backend/internal/shared/telemetry"
	"darzi-backend/internal/shared/util"
)

// Confidence reported for successful model parses.
const llmParseConfidence = 0.95

// Manager routes prompt calls across the configured providers, trying a
// preferred provider first and falling back in registration order.
type Manager struct {
	providers []Provider
	timeout   time.Duration
}

// NewManager keeps only providers that report themselves available.
func NewManager(timeout time.Duration, providers ...Provider) *Manager {
	m := &Manager{timeout: timeout}
	for _, p := range providers {
		if p == nil || !p.Available() {
			continue
		}
		m.providers = append(m.providers, p)
		telemetry.Info("llm.provider_registered", map[string]any{"provider": p.Name()})
	}
	if len(m.providers) == 0 {
		telemetry.Warn("llm.no_providers", map[string]any{})
	}
	return m
}

// Available reports whether at least one provider can serve calls.
func (m *Manager) Available() bool {
	return len(m.providers) > 0
}

// AvailableProviders lists registered provider names in call order.
func (m *Manager) AvailableProviders() []string {
	names := make([]string, 0, len(m.providers))
	for _, p := range m.providers {
		names = append(names, p.Name())
	}
	return names
}

// PrimaryProviderName returns the first registered provider name, or ""
// when none are available.
func (m *Manager) PrimaryProviderName() string {
	if len(m.providers) == 0 {
		return ""
	}
	return m.providers[0].Name()
}

func (m *Manager) ordered(preferred string) []Provider {
	preferred = strings.TrimSpace(preferred)
	if preferred == "" {
		return m.providers
	}
	ordered := make([]Provider, 0, len(m.providers))
	for _, p := range m.providers {
		if strings.EqualFold(p.Name(), preferred) {
			ordered = append(ordered, p)
		}
	}
	for _, p := range m.providers {
		if !strings.EqualFold(p.Name(), preferred) {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// GenerateText sends the prompt to the first provider that answers with
// non-empty content. The returned name identifies that provider.
func (m *Manager) GenerateText(ctx context.Context, prompt, preferred string) (string, string, error) {
	if len(m.providers) == 0 {
		return "", "", ErrUnavailable
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	promptHash := util.HashText(prompt)
	var lastErr error
	for _, p := range m.ordered(preferred) {
		start := time.Now()
		metrics.IncProviderCall()
		content, err := p.GenerateText(ctx, prompt)
		metrics.ObserveProviderCallMs(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.IncProviderFailure()
			telemetry.Warn("llm.provider_failed", map[string]any{
				"provider":    p.Name(),
				"prompt_hash": promptHash,
				"error":       err.Error(),
			})
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if strings.TrimSpace(content) == "" {
			metrics.IncProviderFailure()
			telemetry.Warn("llm.empty_response", map[string]any{
				"provider":    p.Name(),
				"prompt_hash": promptHash,
			})
			lastErr = fmt.Errorf("%w: empty response from %s", ErrInvalidResponse, p.Name())
			continue
		}
		telemetry.Info("llm.generate_ok", map[string]any{
			"provider":    p.Name(),
			"prompt_hash": promptHash,
			"duration_ms": time.Since(start).Milliseconds(),
			"content_len": len(content),
		})
		return content, p.Name(), nil
	}
	return "", "", fmt.Errorf("all providers failed: %w", lastErr)
}

// ParseResume asks a provider to extract structured fields from resume
// text and normalizes the free-form JSON it returns.
func (m *Manager) ParseResume(ctx context.Context, text, preferred string) (resume.ParsedResume, string, error) {
	content, providerName, err := m.GenerateText(ctx, ParsePrompt(text), preferred)
	if err != nil {
		return resume.ParsedResume{}, "", err
	}

	payload, err := ExtractJSONObject(content)
	if err != nil {
		return resume.ParsedResume{}, providerName, err
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return resume.ParsedResume{}, providerName, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	parsed := resumeFromDynamic(data)
	parsed.ParsingSource = resume.SourceLLM
	parsed.ConfidenceScore = llmParseConfidence
	parsed.Normalize()
	telemetry.Info("llm.parse_ok", map[string]any{
		"provider":   providerName,
		"text_hash":  util.HashText(text),
		"skills":     len(parsed.Skills),
		"experience": len(parsed.Experience),
	})
	return parsed, providerName, nil
}
