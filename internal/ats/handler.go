package ats

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches ATS routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimize-ats", h.optimize)
	rg.POST("/analyze-ats", h.analyze)
	rg.GET("/ats-status", h.status)
}

type analyzeRequest struct {
	ResumeText        string `json:"resume_text"`
	JobDescription    string `json:"job_description"`
	PreferredProvider string `json:"preferred_provider"`
}

func (h *Handler) optimize(c *gin.Context) {
	req, ok := bindAnalyzeRequest(c)
	if !ok {
		return
	}

	report, err := h.Svc.Analyze(c.Request.Context(), req.ResumeText, req.JobDescription, req.PreferredProvider)
	if err != nil {
		respondAnalyzeError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"ats_analysis":         report,
			"overall_score":        report.OverallScore,
			"predicted_pass_rate":  report.PredictedPassRate,
			"summary":              report.Summary,
			"improvement_priority": report.ImprovementPriority,
			"optimization_tips":    report.OptimizationTips,
		},
		"metadata": gin.H{
			"analysis_method":        report.AnalysisMethod,
			"provider_used":          report.ProviderUsed,
			"confidence_score":       report.ConfidenceScore,
			"analysis_timestamp":     report.AnalysisTimestamp,
			"resume_length":          len(req.ResumeText),
			"job_description_length": len(req.JobDescription),
		},
	})
}

func (h *Handler) analyze(c *gin.Context) {
	req, ok := bindAnalyzeRequest(c)
	if !ok {
		return
	}

	report, err := h.Svc.Analyze(c.Request.Context(), req.ResumeText, req.JobDescription, req.PreferredProvider)
	if err != nil {
		respondAnalyzeError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":  true,
		"analysis": report,
		"metadata": gin.H{
			"resume_length":          len(req.ResumeText),
			"job_description_length": len(req.JobDescription),
			"analysis_timestamp":     report.AnalysisTimestamp,
		},
	})
}

func (h *Handler) status(c *gin.Context) {
	status := h.Svc.Status()
	status["status"] = "ok"
	respond.JSON(c, http.StatusOK, status)
}

func bindAnalyzeRequest(c *gin.Context) (analyzeRequest, bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", nil)
		return req, false
	}
	req.ResumeText = strings.TrimSpace(req.ResumeText)
	req.JobDescription = strings.TrimSpace(req.JobDescription)

	if req.ResumeText == "" {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "resume_text is required", nil)
		return req, false
	}
	if req.JobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "job_description is required", nil)
		return req, false
	}
	return req, true
}

func respondAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnavailable) || errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "ATS analysis requires an LLM provider", nil)
	case errors.Is(err, llm.ErrTimeout):
		respond.Error(c, http.StatusGatewayTimeout, "PROVIDER_TIMEOUT", "LLM provider timed out", nil)
	case errors.Is(err, ErrAnalysis) || errors.Is(err, llm.ErrInvalidResponse):
		respond.Error(c, http.StatusBadGateway, "ANALYSIS_FAILURE", "ATS analysis failed", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "ANALYSIS_FAILURE", "ATS analysis failed", gin.H{"error": err.Error()})
	}
}
