package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"darzi-backend/internal/extract"
	"darzi-backend/internal/extract/vision"
	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/config"
)

type stubProvider struct{ name string }

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return true }
func (s *stubProvider) GenerateText(context.Context, string) (string, error) {
	return "", nil
}

func newTestRouter(providers ...llm.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := config.Config{Mode: "api", Port: "7860", MaxFileSizeMB: 10}
	h := NewHandler(cfg, llm.NewManager(0, providers...), extract.NewService(vision.New("")))
	h.RegisterRoutes(router.Group(""))
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("GET %s returned %d", path, resp.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func TestRootOverview(t *testing.T) {
	out := getJSON(t, newTestRouter(), "/")

	if out["status"] != "running" || out["version"] != apiVersion {
		t.Fatalf("unexpected overview: %v", out)
	}
	services, ok := out["services"].(map[string]any)
	if !ok {
		t.Fatalf("missing services map")
	}
	if services["local_parser"] != "available" {
		t.Fatalf("local parser should always be available, got %v", services["local_parser"])
	}
	if services["llm_parser"] != "unavailable" {
		t.Fatalf("expected llm_parser unavailable without providers, got %v", services["llm_parser"])
	}
	if services["google_vision_api"] != "configure_required" {
		t.Fatalf("expected vision configure_required, got %v", services["google_vision_api"])
	}
	endpoints, ok := out["endpoints"].(map[string]any)
	if !ok || endpoints["parse_text"] != "/parse" {
		t.Fatalf("unexpected endpoints map: %v", out["endpoints"])
	}
}

func TestHealthDegradesWithoutProviders(t *testing.T) {
	out := getJSON(t, newTestRouter(), "/health")

	if out["status"] != "degraded" {
		t.Fatalf("expected degraded without providers, got %v", out["status"])
	}
	ts, ok := out["timestamp"].(string)
	if !ok || ts == "" {
		t.Fatalf("missing timestamp")
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Fatalf("bad timestamp %q: %v", ts, err)
	}
	capabilities := out["capabilities"].(map[string]any)
	if capabilities["pdf_parsing"] != true || capabilities["llm_parsing"] != false {
		t.Fatalf("unexpected capabilities: %v", capabilities)
	}
	env := out["environment"].(map[string]any)
	if env["app_mode"] != "api" || env["max_file_size_mb"] != float64(10) {
		t.Fatalf("unexpected environment: %v", env)
	}
}

func TestHealthHealthyWithProvider(t *testing.T) {
	out := getJSON(t, newTestRouter(&stubProvider{name: "stub"}), "/health")

	if out["status"] != "healthy" {
		t.Fatalf("expected healthy, got %v", out["status"])
	}
	components := out["components"].(map[string]any)
	if components["hybrid_parser"] != "healthy" {
		t.Fatalf("unexpected components: %v", components)
	}
}

func TestHealthz(t *testing.T) {
	out := getJSON(t, newTestRouter(), "/healthz")

	if out["status"] != "ok" || out["service"] != serviceName {
		t.Fatalf("unexpected healthz payload: %v", out)
	}
}

func TestAPIStatusListsProviders(t *testing.T) {
	out := getJSON(t, newTestRouter(&stubProvider{name: "stub"}), "/status")

	providers := out["llm_providers"].(map[string]any)
	if providers["stub"] != true {
		t.Fatalf("expected stub provider listed, got %v", providers)
	}
	features := out["features"].(map[string]any)
	parsing := features["resume_parsing"].(map[string]any)
	if parsing["local"] != true || parsing["hybrid"] != true {
		t.Fatalf("unexpected parsing features: %v", parsing)
	}
}

func TestLLMStatusBothStates(t *testing.T) {
	disconnected := getJSON(t, newTestRouter(), "/mcp-status")
	if disconnected["status"] != "disconnected" {
		t.Fatalf("expected disconnected, got %v", disconnected["status"])
	}
	if tools := disconnected["tools"].([]any); len(tools) != 0 {
		t.Fatalf("expected no tools, got %v", tools)
	}

	connected := getJSON(t, newTestRouter(&stubProvider{name: "stub"}), "/mcp-status")
	if connected["status"] != "connected" {
		t.Fatalf("expected connected, got %v", connected["status"])
	}
	tools := connected["tools"].([]any)
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	first := tools[0].(map[string]any)
	if !strings.Contains(first["description"].(string), "stub") {
		t.Fatalf("expected primary provider in description, got %v", first)
	}
}
