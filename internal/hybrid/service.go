package hybrid

import (
	"context"
	"errors"
	"strings"

	"darzi-backend/internal/llm"
	"darzi-backend/internal/parser"
	"darzi-backend/internal/resume"
	"darzi-backend/internal/shared/metrics"
	"darzi-backend/internal/shared/telemetry"
	"darzi-backend/internal/shared/util"
)

const rawExcerptLimit = 500

// Service runs resume parses against the local parser, the LLM manager, or
// both. The local parser never fails, so Parse always yields a record.
type Service struct {
	Local *parser.Service
	LLM   *llm.Manager
}

// NewService constructs a Service.
func NewService(local *parser.Service, manager *llm.Manager) *Service {
	return &Service{Local: local, LLM: manager}
}

// ParseOptions control a hybrid parse.
type ParseOptions struct {
	UseLLM            bool
	PreferredProvider string
}

// Result carries a parsed record plus non-fatal warnings keyed by the
// source that degraded.
type Result struct {
	Resume   resume.ParsedResume
	Warnings map[string]string
}

// Parse runs the local parser, then the LLM parser when requested and
// available, and merges the two. An LLM failure is downgraded to a warning
// on the local-only result rather than an error.
func (s *Service) Parse(ctx context.Context, text string, opts ParseOptions) Result {
	local := s.Local.Parse(text)

	if !opts.UseLLM || !s.LLM.Available() {
		metrics.IncParse(resume.SourceLocal)
		return Result{Resume: local}
	}

	llmParsed, provider, err := s.LLM.ParseResume(ctx, text, opts.PreferredProvider)
	if err != nil {
		telemetry.Warn("hybrid.llm_degraded", map[string]any{
			"error":     err.Error(),
			"text_hash": util.HashText(text),
		})
		metrics.IncParse(resume.SourceLocal)
		return Result{
			Resume:   local,
			Warnings: map[string]string{"llm": degradeMessage(err)},
		}
	}

	merged := Merge(local, llmParsed)
	metrics.IncParse(resume.SourceHybrid)
	telemetry.Info("hybrid.merged", map[string]any{
		"provider":   provider,
		"confidence": merged.ConfidenceScore,
	})
	return Result{Resume: merged}
}

// ParseLLMOnly parses with the LLM alone, no local fallback. Fails with
// llm.ErrUnavailable when no provider is configured.
func (s *Service) ParseLLMOnly(ctx context.Context, text, preferred string) (resume.ParsedResume, error) {
	parsed, provider, err := s.LLM.ParseResume(ctx, text, preferred)
	if err != nil {
		return resume.ParsedResume{}, err
	}
	parsed.RawText = rawExcerpt(text)
	metrics.IncParse(resume.SourceLLM)
	telemetry.Info("hybrid.llm_only_ok", map[string]any{"provider": provider})
	return parsed, nil
}

// ParseLocalOnly parses with the rule-based parser alone.
func (s *Service) ParseLocalOnly(text string) resume.ParsedResume {
	parsed := s.Local.Parse(text)
	metrics.IncParse(resume.SourceLocal)
	return parsed
}

// Status reports which parsing backends are usable right now.
func (s *Service) Status() map[string]any {
	var primary any
	if name := s.LLM.PrimaryProviderName(); name != "" {
		primary = name
	}
	method := "local"
	if s.LLM.Available() {
		method = "llm"
	}
	return map[string]any{
		"local_parser_available":  true,
		"llm_available":           s.LLM.Available(),
		"available_llm_providers": s.LLM.AvailableProviders(),
		"primary_llm_provider":    primary,
		"recommended_method":      method,
	}
}

// degradeMessage maps an LLM failure onto a stable client-facing warning
// without leaking provider internals.
func degradeMessage(err error) string {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		return "LLM provider timed out; returned local parse only"
	case errors.Is(err, llm.ErrInvalidResponse):
		return "LLM response could not be parsed; returned local parse only"
	case errors.Is(err, llm.ErrUnavailable):
		return "no LLM provider available; returned local parse only"
	default:
		return "LLM parsing failed; returned local parse only"
	}
}

// rawExcerpt mirrors the raw_text excerpt the local parser produces, for
// records that skipped the local pass.
func rawExcerpt(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= rawExcerptLimit {
		return string(runes)
	}
	return string(runes[:rawExcerptLimit]) + "..."
}
