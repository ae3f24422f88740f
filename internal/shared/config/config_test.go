package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "API_CORS_ORIGINS", "GOOGLE_API_KEY", "GEMINI_API_KEY",
		"GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
		"MAX_FILE_SIZE_MB", "LLM_TIMEOUT_SECONDS", "APP_MODE", "ENV", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "7860" {
		t.Fatalf("expected default port 7860, got %q", cfg.Port)
	}
	if cfg.LLMModel != "gemini-1.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.LLMModel)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected default OpenAI model %q", cfg.OpenAIModel)
	}
	if cfg.MaxFileSizeMB != 10 {
		t.Fatalf("expected default max file size 10, got %d", cfg.MaxFileSizeMB)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Fatalf("expected default timeout 120s, got %s", cfg.LLMTimeout)
	}
	if cfg.Mode != "api" {
		t.Fatalf("expected default mode api, got %q", cfg.Mode)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected default env dev, got %q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_FILE_SIZE_MB", "5")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("API_CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ENV", "PRODUCTION")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.MaxFileSizeMB != 5 {
		t.Fatalf("expected max file size 5, got %d", cfg.MaxFileSizeMB)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("expected timeout 30s, got %s", cfg.LLMTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSAllowOrigin) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.CORSAllowOrigin)
	}
	for i, origin := range want {
		if cfg.CORSAllowOrigin[i] != origin {
			t.Fatalf("expected origin %q at %d, got %q", origin, i, cfg.CORSAllowOrigin[i])
		}
	}
	if cfg.Env != "production" {
		t.Fatalf("expected normalized env production, got %q", cfg.Env)
	}
}

func TestLoadRejectsBadIntegers(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_FILE_SIZE_MB", "abc")
	t.Setenv("LLM_TIMEOUT_SECONDS", "-3")

	cfg := Load()
	if cfg.MaxFileSizeMB != 10 {
		t.Fatalf("expected fallback max file size 10, got %d", cfg.MaxFileSizeMB)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Fatalf("expected fallback timeout 120s, got %s", cfg.LLMTimeout)
	}
}

func TestVisionAPIKeyPrecedence(t *testing.T) {
	cfg := Config{GoogleAPIKey: "google-key", GeminiAPIKey: "gemini-key"}
	if got := cfg.VisionAPIKey(); got != "google-key" {
		t.Fatalf("expected GOOGLE_API_KEY to win, got %q", got)
	}

	cfg.GoogleAPIKey = ""
	if got := cfg.VisionAPIKey(); got != "gemini-key" {
		t.Fatalf("expected GEMINI_API_KEY fallback, got %q", got)
	}

	cfg.GeminiAPIKey = ""
	if got := cfg.VisionAPIKey(); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
	if got := cfg.LLMAPIKey(); got != "" {
		t.Fatalf("expected LLM key to follow same precedence, got %q", got)
	}
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := Config{MaxFileSizeMB: 10}
	if got := cfg.MaxUploadBytes(); got != 10<<20 {
		t.Fatalf("expected 10 MiB in bytes, got %d", got)
	}
}
