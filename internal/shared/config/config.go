package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	GoogleAPIKey    string
	GeminiAPIKey    string
	LLMModel        string
	OpenAIAPIKey    string
	OpenAIModel     string
	MaxFileSizeMB   int
	LLMTimeout      time.Duration
	Mode            string
	Env             string
	LogLevel        string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load()
	_ = godotenv.Load("cmd/.env")

	return Config{
		Port:            getEnv("PORT", "7860"),
		CORSAllowOrigin: splitAndTrim(getEnv("API_CORS_ORIGINS", "*")),
		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		LLMModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MaxFileSizeMB:   getEnvInt("MAX_FILE_SIZE_MB", 10),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		Mode:            getEnv("APP_MODE", "api"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// VisionAPIKey returns the key used for OCR calls: GOOGLE_API_KEY with
// GEMINI_API_KEY as fallback, matching the provider-side precedence.
func (c Config) VisionAPIKey() string {
	if c.GoogleAPIKey != "" {
		return c.GoogleAPIKey
	}
	return c.GeminiAPIKey
}

// LLMAPIKey returns the key for Gemini text generation, same precedence
// as VisionAPIKey.
func (c Config) LLMAPIKey() string {
	return c.VisionAPIKey()
}

// MaxUploadBytes converts the configured megabyte cap to bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
