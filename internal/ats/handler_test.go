package ats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group(""))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestOptimizeRequiresResumeText(t *testing.T) {
	router := newTestRouter(NewHandler(newTestService()))

	resp := postJSON(router, "/optimize-ats", `{"job_description": "Go engineer"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "resume_text is required") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestOptimizeRequiresJobDescription(t *testing.T) {
	router := newTestRouter(NewHandler(newTestService()))

	resp := postJSON(router, "/optimize-ats", `{"resume_text": "ten years of Go"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "job_description is required") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestOptimizeWithoutProviderReturns503(t *testing.T) {
	router := newTestRouter(NewHandler(newTestService()))

	resp := postJSON(router, "/optimize-ats", `{"resume_text": "resume", "job_description": "job"}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "SERVICE_UNAVAILABLE") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestOptimizeResponseShape(t *testing.T) {
	provider := &stubProvider{name: "Stub", reply: atsPayload}
	router := newTestRouter(NewHandler(newTestService(provider)))

	resp := postJSON(router, "/optimize-ats", `{"resume_text": "ten years of Go", "job_description": "Go engineer"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			OverallScore      float64  `json:"overall_score"`
			PredictedPassRate float64  `json:"predicted_pass_rate"`
			OptimizationTips  []string `json:"optimization_tips"`
			AtsAnalysis       Report   `json:"ats_analysis"`
		} `json:"data"`
		Metadata struct {
			AnalysisMethod string `json:"analysis_method"`
			ProviderUsed   string `json:"provider_used"`
			ResumeLength   int    `json:"resume_length"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success true")
	}
	if out.Data.OverallScore != 100 {
		t.Fatalf("expected overall score 100, got %v", out.Data.OverallScore)
	}
	if len(out.Data.OptimizationTips) != 1 {
		t.Fatalf("expected one optimization tip, got %v", out.Data.OptimizationTips)
	}
	if out.Metadata.AnalysisMethod != "llm" {
		t.Fatalf("expected llm method, got %q", out.Metadata.AnalysisMethod)
	}
	if out.Metadata.ResumeLength != len("ten years of Go") {
		t.Fatalf("unexpected resume_length: %d", out.Metadata.ResumeLength)
	}
}

func TestAnalyzeResponseShape(t *testing.T) {
	provider := &stubProvider{name: "Stub", reply: atsPayload}
	router := newTestRouter(NewHandler(newTestService(provider)))

	resp := postJSON(router, "/analyze-ats", `{"resume_text": "resume", "job_description": "job"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Success  bool   `json:"success"`
		Analysis Report `json:"analysis"`
		Metadata struct {
			JobDescriptionLength int    `json:"job_description_length"`
			AnalysisTimestamp    string `json:"analysis_timestamp"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Analysis.SkillsAnalysis.MissingSkills[0] != "Kubernetes" {
		t.Fatalf("unexpected missing skills: %v", out.Analysis.SkillsAnalysis.MissingSkills)
	}
	if out.Metadata.AnalysisTimestamp == "" {
		t.Fatalf("expected analysis_timestamp in metadata")
	}
}

func TestATSStatusShape(t *testing.T) {
	router := newTestRouter(NewHandler(newTestService()))

	req := httptest.NewRequest(http.MethodGet, "/ats-status", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", out["status"])
	}
	if out["llm_available"] != false {
		t.Fatalf("expected llm_available false, got %v", out["llm_available"])
	}
	if out["fallback_available"] != false {
		t.Fatalf("expected fallback_available false, got %v", out["fallback_available"])
	}
}
