// Package status serves the API overview and health probes.
package status

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"darzi-backend/internal/extract"
	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/config"
	"darzi-backend/internal/shared/server/respond"
)

const (
	apiVersion  = "2.0.0"
	serviceName = "darzi-ai-resume-suite"
)

// Handler reports service availability. All probes are computed from the
// wired dependencies; nothing here performs remote calls.
type Handler struct {
	Cfg     config.Config
	LLM     *llm.Manager
	Extract *extract.Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg config.Config, manager *llm.Manager, extractSvc *extract.Service) *Handler {
	return &Handler{Cfg: cfg, LLM: manager, Extract: extractSvc}
}

// RegisterRoutes attaches the probe routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.root)
	rg.GET("/health", h.health)
	rg.GET("/healthz", h.healthz)
	rg.GET("/status", h.apiStatus)
	rg.GET("/mcp-status", h.llmStatus)
}

func (h *Handler) visionReady() bool {
	return h.Extract != nil && h.Extract.VisionReady()
}

func (h *Handler) root(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"message":      "Darzi Resume Parser & ATS Optimizer API",
		"version":      apiVersion,
		"status":       "running",
		"organization": "VIT Bhopal AI Innovators Hub",
		"description":  "AI-powered resume parsing, text extraction, and ATS optimization",
		"services": gin.H{
			"local_parser":      "available",
			"llm_parser":        availability(h.LLM.Available()),
			"hybrid_parser":     availability(h.LLM.Available()),
			"ats_analyzer":      availability(h.LLM.Available()),
			"resume_generator":  availability(h.LLM.Available()),
			"text_extraction":   "available",
			"google_vision_api": visionAvailability(h.visionReady()),
		},
		"endpoints": gin.H{
			"health":           "/health",
			"parse_text":       "/parse",
			"parse_pdf":        "/parse-pdf",
			"parse_enhanced":   "/parse-enhanced",
			"parse_llm_only":   "/parse-llm-only",
			"parse_local_only": "/parse-local-only",
			"extract_text":     "/api/extract",
			"extract_url":      "/api/extract-url",
			"optimize_ats":     "/optimize-ats",
			"analyze_ats":      "/analyze-ats",
			"generate_resume":  "/generate-resume",
			"templates":        "/templates",
			"parser_status":    "/parser-status",
			"ats_status":       "/ats-status",
			"mcp_status":       "/mcp-status",
			"metrics":          "/metrics",
		},
		"text_extraction": gin.H{
			"supported_formats": gin.H{
				"text_files":   []string{".txt", ".md", ".csv", ".log", ".rtf"},
				"vision_files": []string{".pdf", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".ico"},
			},
		},
		"features": []string{
			"Hybrid resume parsing (local + LLM)",
			"ATS compatibility analysis",
			"Text extraction with OCR routing",
			"Google Drive integration",
			"LaTeX resume generation",
		},
		"cost_information": gin.H{
			"resume_parsing": "Free (local parser)",
			"text_files":     "Free (direct reading)",
			"pdf_images":     "Google Vision API rates apply",
			"llm_parsing":    "Gemini API rates apply",
		},
	})
}

func (h *Handler) health(c *gin.Context) {
	llmUp := h.LLM.Available()

	overall := "healthy"
	if !llmUp {
		overall = "degraded"
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"components": gin.H{
			"api":              "healthy",
			"local_parser":     "healthy",
			"hybrid_parser":    healthLabel(llmUp),
			"ats_analyzer":     healthLabel(llmUp),
			"resume_generator": healthLabel(llmUp),
			"vision_ocr":       healthLabel(h.visionReady()),
		},
		"capabilities": gin.H{
			"text_parsing":      true,
			"pdf_parsing":       true,
			"llm_parsing":       llmUp,
			"hybrid_parsing":    llmUp,
			"ats_analysis":      llmUp,
			"resume_generation": llmUp,
			"ocr_extraction":    h.visionReady(),
		},
		"environment": gin.H{
			"app_mode":         h.Cfg.Mode,
			"port":             h.Cfg.Port,
			"max_file_size_mb": h.Cfg.MaxFileSizeMB,
		},
	})
}

func (h *Handler) healthz(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
	})
}

func (h *Handler) apiStatus(c *gin.Context) {
	providers := gin.H{}
	for _, name := range h.LLM.AvailableProviders() {
		providers[name] = true
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"api_name": "Darzi AI Resume Suite",
		"version":  apiVersion,
		"features": gin.H{
			"resume_parsing": gin.H{
				"local":  true,
				"llm":    h.LLM.Available(),
				"hybrid": h.LLM.Available(),
			},
			"ats_analysis":      h.LLM.Available(),
			"resume_generation": h.LLM.Available(),
			"text_extraction":   h.visionReady(),
		},
		"llm_providers": providers,
	})
}

// llmStatus serves the legacy /mcp-status path; the remote parse service
// it reported on is now the in-process LLM manager.
func (h *Handler) llmStatus(c *gin.Context) {
	if !h.LLM.Available() {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":  "disconnected",
			"message": "No LLM providers available",
			"tools":   []gin.H{},
		})
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"status":  "connected",
		"message": "LLM providers connected successfully",
		"tools": []gin.H{
			{"name": "parse_resume", "description": "Extract structured resume fields via " + h.LLM.PrimaryProviderName()},
			{"name": "generate_text", "description": "Free-form generation for ATS analysis and LaTeX output"},
		},
	})
}

func availability(up bool) string {
	if up {
		return "available"
	}
	return "unavailable"
}

func visionAvailability(up bool) string {
	if up {
		return "available"
	}
	return "configure_required"
}

func healthLabel(up bool) string {
	if up {
		return "healthy"
	}
	return "unhealthy"
}
