package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/metrics"
	"darzi-backend/internal/shared/telemetry"
)

// analysisConfidence reflects that LLM scoring is trusted but not exact.
const analysisConfidence = 0.9

var (
	// ErrUnavailable means no LLM provider is configured.
	ErrUnavailable = errors.New("ATS analysis requires an LLM provider")
	// ErrAnalysis means the provider replied but not with a usable report.
	ErrAnalysis = errors.New("ATS analysis failed")
)

// Service scores resumes against job descriptions via the LLM manager.
type Service struct {
	LLM *llm.Manager
}

// NewService constructs a Service.
func NewService(manager *llm.Manager) *Service {
	return &Service{LLM: manager}
}

// Analyze asks the LLM for a full compatibility report. Provider errors
// pass through wrapped so callers can map timeouts and bad responses;
// a decodable-but-wild report is clamped, not rejected.
func (s *Service) Analyze(ctx context.Context, resumeText, jobDescription, preferred string) (Report, error) {
	if !s.LLM.Available() {
		return Report{}, ErrUnavailable
	}

	prompt := strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
	).Replace(llm.ATSPromptTemplate())

	raw, provider, err := s.LLM.GenerateText(ctx, prompt, preferred)
	if err != nil {
		metrics.IncATSFailed()
		return Report{}, err
	}

	jsonStr, err := llm.ExtractJSONObject(raw)
	if err != nil {
		metrics.IncATSFailed()
		return Report{}, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	var report Report
	if err := json.Unmarshal([]byte(jsonStr), &report); err != nil {
		metrics.IncATSFailed()
		return Report{}, fmt.Errorf("%w: decoding report: %v", ErrAnalysis, err)
	}

	report.AnalysisMethod = "llm"
	report.ProviderUsed = provider
	report.ConfidenceScore = analysisConfidence
	report.AnalysisTimestamp = time.Now().UTC().Format(time.RFC3339)
	report.normalize()

	metrics.IncATSAnalysis()
	telemetry.Info("ats.analysis_ok", map[string]any{
		"provider":      provider,
		"overall_score": report.OverallScore,
	})
	return report, nil
}

// Status reports analyzer availability. fallback_available is always false:
// scoring happens in the LLM or not at all.
func (s *Service) Status() map[string]any {
	var primary any
	if s.LLM.Available() {
		primary = s.LLM.PrimaryProviderName()
	}
	return map[string]any{
		"llm_available":       s.LLM.Available(),
		"available_providers": s.LLM.AvailableProviders(),
		"primary_provider":    primary,
		"fallback_available":  false,
		"recommended_method":  "llm",
	}
}
