package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"darzi-backend/internal/llm"
)

const testTemplate = `\documentclass{article}
\begin{document}
[FULL_NAME]
\end{document}`

const latexReply = "```latex\n\\documentclass{article}\n\\begin{document}\nAda Lovelace\n\\end{document}\n```"

type stubProvider struct {
	name   string
	reply  string
	err    error
	prompt string
	calls  int
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return true }

func (s *stubProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(providers ...llm.Provider) *Service {
	return NewService(llm.NewManager(0, providers...))
}

func sampleRequest() Request {
	return Request{
		UserResume: map[string]any{
			"name":          "Ada Lovelace",
			"email":         []any{"ada@example.com"},
			"mobile_number": []any{"+1 555 0100"},
			"summary":       "Engine programmer and analyst.",
			"skills": map[string]any{
				"programming_languages": []any{"Ada", "Python"},
			},
			"experience": []any{
				map[string]any{
					"title":            "Analyst",
					"company":          "Analytical Engines Ltd",
					"duration":         "1842 - 1843",
					"responsibilities": []any{"Published the first computing algorithm"},
				},
			},
		},
		ResumeTemplate: testTemplate,
	}
}

func TestGenerateRequiresResume(t *testing.T) {
	svc := newTestService(&stubProvider{name: "stub", reply: latexReply})

	_, err := svc.Generate(context.Background(), Request{ResumeTemplate: testTemplate})
	if !errors.Is(err, ErrNoResume) {
		t.Fatalf("expected ErrNoResume, got %v", err)
	}
}

func TestGenerateRejectsEmptyTemplate(t *testing.T) {
	svc := newTestService(&stubProvider{name: "stub", reply: latexReply})

	req := sampleRequest()
	req.ResumeTemplate = "   "
	_, err := svc.Generate(context.Background(), req)
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected message to mention empty template, got %q", err)
	}
}

func TestGenerateValidatesTemplateBeforeProvider(t *testing.T) {
	stub := &stubProvider{name: "stub", reply: latexReply}
	svc := newTestService(stub)

	req := sampleRequest()
	req.ResumeTemplate = `\documentclass{article}`
	_, err := svc.Generate(context.Background(), req)
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
	if !strings.Contains(err.Error(), `\end{document}`) {
		t.Fatalf("expected missing parts in message, got %q", err)
	}
	if stub.calls != 0 {
		t.Fatalf("provider called %d times for an invalid template", stub.calls)
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	svc := newTestService()

	_, err := svc.Generate(context.Background(), sampleRequest())
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGeneratePromptContents(t *testing.T) {
	stub := &stubProvider{name: "stub", reply: latexReply}
	svc := newTestService(stub)

	score := 64
	req := sampleRequest()
	req.AtsScore = &score
	req.ImprovementSuggestions = []string{"Add more role keywords"}

	result, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	for _, want := range []string{
		"Full Name: Ada Lovelace",
		"Email: ada@example.com",
		"Phone: +1 555 0100",
		"JOB 1:",
		"Position: Analyst",
		"Company: Analytical Engines Ltd",
		"Programming Languages: Ada, Python",
		"Current ATS Score: 64/100",
		"1. Add more role keywords",
		testTemplate,
		result.GenerationID,
	} {
		if !strings.Contains(stub.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(stub.prompt, "{{") {
		t.Fatalf("prompt still has unfilled placeholders")
	}
}

func TestGenerateStripsFences(t *testing.T) {
	stub := &stubProvider{name: "stub", reply: latexReply}
	svc := newTestService(stub)

	result, err := svc.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.HasPrefix(result.LatexCode, `\documentclass`) {
		t.Fatalf("latex does not start with \\documentclass: %q", result.LatexCode[:20])
	}
	if strings.Contains(result.LatexCode, "```") {
		t.Fatalf("fences survived cleaning")
	}
	if result.ProviderUsed != "stub" {
		t.Fatalf("expected provider stub, got %q", result.ProviderUsed)
	}
	if len(result.GenerationID) != 8 {
		t.Fatalf("expected 8-char generation id, got %q", result.GenerationID)
	}
	if result.Metadata["generation_method"] != "llm" {
		t.Fatalf("unexpected generation_method: %v", result.Metadata["generation_method"])
	}
	if result.Metadata["response_length"] != len(latexReply) {
		t.Fatalf("unexpected response_length: %v", result.Metadata["response_length"])
	}
	providers, ok := result.Metadata["available_providers"].([]string)
	if !ok || len(providers) != 1 || providers[0] != "stub" {
		t.Fatalf("unexpected available_providers: %v", result.Metadata["available_providers"])
	}
}

func TestGenerateRejectsProseReply(t *testing.T) {
	stub := &stubProvider{name: "stub", reply: "I am unable to produce LaTeX today."}
	svc := newTestService(stub)

	_, err := svc.Generate(context.Background(), sampleRequest())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerateWrapsProviderError(t *testing.T) {
	stub := &stubProvider{name: "stub", err: errors.New("quota exhausted")}
	svc := newTestService(stub)

	_, err := svc.Generate(context.Background(), sampleRequest())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}
