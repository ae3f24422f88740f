// Package bootstrap builds the application object graph from
// configuration: provider clients, domain services, handlers and the
// router. cmd/api stays a thin shell around Build.
package bootstrap

import (
	"github.com/gin-gonic/gin"

	"darzi-backend/internal/ats"
	"darzi-backend/internal/extract"
	"darzi-backend/internal/extract/vision"
	"darzi-backend/internal/generator"
	"darzi-backend/internal/hybrid"
	"darzi-backend/internal/llm"
	"darzi-backend/internal/llm/gemini"
	"darzi-backend/internal/llm/openai"
	"darzi-backend/internal/parser"
	"darzi-backend/internal/shared/config"
	"darzi-backend/internal/shared/server"
	"darzi-backend/internal/shared/telemetry"
	"darzi-backend/internal/status"
)

// App holds the shared dependencies behind the HTTP surface.
type App struct {
	Config config.Config
	Router *gin.Engine

	LLM     *llm.Manager
	Local   *parser.Service
	Hybrid  *hybrid.Service
	ATS     *ats.Service
	Gen     *generator.Service
	Extract *extract.Service
}

// Build wires services and handlers from configuration. Missing provider
// keys degrade features rather than failing startup; the status endpoints
// report what is actually available.
func Build(cfg config.Config) *App {
	telemetry.SetLevel(cfg.LogLevel)

	// Gemini is the primary provider; OpenAI serves as fallback when a
	// key for it is configured.
	geminiClient := gemini.New(cfg.LLMAPIKey(), cfg.LLMModel)
	openaiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	manager := llm.NewManager(cfg.LLMTimeout, geminiClient, openaiClient)

	localParser := &parser.Service{}
	hybridSvc := hybrid.NewService(localParser, manager)
	atsSvc := ats.NewService(manager)
	genSvc := generator.NewService(manager)
	extractSvc := extract.NewService(vision.New(cfg.VisionAPIKey()))

	app := &App{
		Config:  cfg,
		LLM:     manager,
		Local:   localParser,
		Hybrid:  hybridSvc,
		ATS:     atsSvc,
		Gen:     genSvc,
		Extract: extractSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		StatusHandler:   status.NewHandler(cfg, manager, extractSvc),
		ParseHandler:    hybrid.NewHandler(hybridSvc, extractSvc, cfg.MaxUploadBytes()),
		ATSHandler:      ats.NewHandler(atsSvc),
		GenerateHandler: generator.NewHandler(genSvc),
		ExtractHandler:  extract.NewHandler(extractSvc, cfg.MaxUploadBytes()),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"llm_available": manager.Available(),
		"vision_ready":  extractSvc.VisionReady(),
		"max_upload_mb": cfg.MaxFileSizeMB,
	})
	return app
}
