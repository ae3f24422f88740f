package ats

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"darzi-backend/internal/llm"
)

const atsPayload = "```json\n" + `{
  "overall_score": 150,
  "keyword_analysis": {"keyword_match_score": -10, "matched_keywords": ["Go"], "keyword_density": 42},
  "content_analysis": {"content_score": 82, "strengths": ["Quantified results"]},
  "formatting_analysis": {"formatting_score": 90},
  "skills_analysis": {"skills_match_score": 75, "missing_skills": ["Kubernetes"]},
  "experience_analysis": {"experience_score": 70},
  "improvement_priority": {"high_priority": ["Add Kubernetes experience"]},
  "ats_optimization_tips": ["Use standard headers"],
  "predicted_ats_pass_rate": 110
}` + "\n```"

type stubProvider struct {
	name   string
	reply  string
	err    error
	prompt string
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return true }

func (s *stubProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(providers ...llm.Provider) *Service {
	return NewService(llm.NewManager(0, providers...))
}

func TestAnalyzeWithoutProvider(t *testing.T) {
	svc := newTestService()

	_, err := svc.Analyze(context.Background(), "resume", "job", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAnalyzeFillsPromptPlaceholders(t *testing.T) {
	provider := &stubProvider{name: "Stub", reply: atsPayload}
	svc := newTestService(provider)

	if _, err := svc.Analyze(context.Background(), "RESUME BODY HERE", "JOB POSTING HERE", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.prompt, "RESUME BODY HERE") {
		t.Fatalf("prompt missing resume text")
	}
	if !strings.Contains(provider.prompt, "JOB POSTING HERE") {
		t.Fatalf("prompt missing job description")
	}
	if strings.Contains(provider.prompt, "{{") {
		t.Fatalf("prompt has unfilled placeholders")
	}
}

func TestAnalyzeClampsAndAnnotates(t *testing.T) {
	provider := &stubProvider{name: "Gemini (gemini-1.5-flash)", reply: atsPayload}
	svc := newTestService(provider)

	report, err := svc.Analyze(context.Background(), "resume", "job", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.OverallScore != 100 {
		t.Fatalf("expected overall score clamped to 100, got %v", report.OverallScore)
	}
	if report.PredictedPassRate != 100 {
		t.Fatalf("expected pass rate clamped to 100, got %v", report.PredictedPassRate)
	}
	if report.KeywordAnalysis.KeywordMatchScore != 0 {
		t.Fatalf("expected keyword score clamped to 0, got %v", report.KeywordAnalysis.KeywordMatchScore)
	}
	if report.ContentAnalysis.ContentScore != 82 {
		t.Fatalf("expected content score untouched, got %v", report.ContentAnalysis.ContentScore)
	}
	if report.AnalysisMethod != "llm" {
		t.Fatalf("expected analysis_method llm, got %q", report.AnalysisMethod)
	}
	if report.ProviderUsed != "Gemini (gemini-1.5-flash)" {
		t.Fatalf("unexpected provider: %q", report.ProviderUsed)
	}
	if report.ConfidenceScore != 0.9 {
		t.Fatalf("expected confidence 0.9, got %v", report.ConfidenceScore)
	}
	if _, err := time.Parse(time.RFC3339, report.AnalysisTimestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", report.AnalysisTimestamp)
	}
	if report.Summary != "Analysis completed" {
		t.Fatalf("expected default summary, got %q", report.Summary)
	}
	if report.ExperienceAnalysis.RelevantExperience == nil {
		t.Fatalf("expected empty list, got nil")
	}
}

func TestAnalyzeRejectsProseReply(t *testing.T) {
	provider := &stubProvider{name: "Stub", reply: "The resume looks fine overall."}
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), "resume", "job", "")
	if !errors.Is(err, ErrAnalysis) {
		t.Fatalf("expected ErrAnalysis, got %v", err)
	}
}

func TestAnalyzePassesProviderErrorsThrough(t *testing.T) {
	provider := &stubProvider{name: "Stub", err: errors.New("network down")}
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), "resume", "job", "")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if errors.Is(err, ErrAnalysis) {
		t.Fatalf("provider failure should not be an analysis error: %v", err)
	}
}
