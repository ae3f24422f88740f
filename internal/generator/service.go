// Package generator turns parsed resume data plus a LaTeX template into a
// complete LaTeX document via the LLM. Templates are validated locally
// before any provider call; a provider is required, there is no offline
// substitution path.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/metrics"
	"darzi-backend/internal/shared/telemetry"
)

var (
	// ErrNoResume means the request carried no resume data.
	ErrNoResume = errors.New("user resume data is required")
	// ErrInvalidTemplate means the template failed the structural check.
	ErrInvalidTemplate = errors.New("resume template failed validation")
	// ErrGeneration means the provider call or its output was unusable.
	ErrGeneration = errors.New("resume generation failed")
)

// Request is a resume generation request.
type Request struct {
	UserResume             map[string]any    `json:"user_resume"`
	ResumeTemplate         string            `json:"resume_template"`
	ExtraInfo              map[string]string `json:"extra_info"`
	AtsScore               *int              `json:"ats_score"`
	ImprovementSuggestions []string          `json:"improvement_suggestions"`
	PreferredProvider      string            `json:"preferred_provider"`
}

// Generated is a successful generation result.
type Generated struct {
	LatexCode    string
	ProviderUsed string
	GenerationID string
	Metadata     map[string]any
}

// Service generates LaTeX resumes through the LLM manager.
type Service struct {
	LLM *llm.Manager
}

// NewService constructs a Service.
func NewService(manager *llm.Manager) *Service {
	return &Service{LLM: manager}
}

// Generate validates the request, builds the prompt and runs one provider
// round trip. The output must be a complete document starting with
// \documentclass after fence stripping.
func (s *Service) Generate(ctx context.Context, req Request) (Generated, error) {
	if len(req.UserResume) == 0 {
		return Generated{}, ErrNoResume
	}

	template := strings.TrimSpace(req.ResumeTemplate)
	if template == "" {
		return Generated{}, fmt.Errorf("%w: template is empty", ErrInvalidTemplate)
	}
	if v := ValidateTemplate(template); !v.IsValid {
		return Generated{}, fmt.Errorf("%w: missing %s", ErrInvalidTemplate, strings.Join(v.missing(), ", "))
	}

	if !s.LLM.Available() {
		return Generated{}, llm.ErrUnavailable
	}

	generationID := uuid.NewString()[:8]
	prompt := buildPrompt(generationID, req, template)

	raw, provider, err := s.LLM.GenerateText(ctx, prompt, req.PreferredProvider)
	if err != nil {
		metrics.IncGenerationFailed()
		return Generated{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	latex := llm.CleanResponse(raw)
	if !strings.HasPrefix(latex, `\documentclass`) {
		metrics.IncGenerationFailed()
		telemetry.Warn("generator.incomplete_output", map[string]any{
			"generation_id": generationID,
			"provider":      provider,
			"prefix":        excerpt(latex, 40),
		})
		return Generated{}, fmt.Errorf("%w: output is not a complete LaTeX document", ErrGeneration)
	}

	metrics.IncGeneration()
	telemetry.Info("generator.resume_ok", map[string]any{
		"generation_id": generationID,
		"provider":      provider,
		"latex_length":  len(latex),
	})

	return Generated{
		LatexCode:    latex,
		ProviderUsed: provider,
		GenerationID: generationID,
		Metadata: map[string]any{
			"generation_method":   "llm",
			"generation_id":       generationID,
			"prompt_length":       len(prompt),
			"response_length":     len(raw),
			"available_providers": s.LLM.AvailableProviders(),
		},
	}, nil
}

// Available reports whether generation can run at all.
func (s *Service) Available() bool {
	return s.LLM.Available()
}

// Providers lists the provider names generation can use.
func (s *Service) Providers() []string {
	return s.LLM.AvailableProviders()
}

func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
