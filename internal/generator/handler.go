package generator

import (
	"errors"
	"net/http"

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

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-resume", h.generate)
	rg.GET("/generate-resume/status", h.status)
	rg.GET("/templates", h.listTemplates)
	rg.GET("/templates/:name", h.getTemplate)
}

func (h *Handler) generate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoResume):
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_resume is required", nil)
		case errors.Is(err, ErrInvalidTemplate):
			respond.Error(c, http.StatusBadRequest, "INVALID_TEMPLATE", err.Error(), nil)
		case errors.Is(err, llm.ErrUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", "no LLM provider available for resume generation", nil)
		case errors.Is(err, llm.ErrTimeout):
			respond.Error(c, http.StatusGatewayTimeout, "PROVIDER_TIMEOUT", "LLM provider timed out", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "GENERATION_FAILURE", err.Error(), nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":       true,
		"latex_code":    result.LatexCode,
		"provider_used": result.ProviderUsed,
		"metadata":      result.Metadata,
	})
}

func (h *Handler) status(c *gin.Context) {
	status := "no_providers_available"
	if h.Svc.Available() {
		status = "operational"
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"available": h.Svc.Available(),
		"providers": h.Svc.Providers(),
		"service":   "Resume Generator",
		"status":    status,
	})
}

func (h *Handler) listTemplates(c *gin.Context) {
	names := TemplateNames()
	info := make(map[string]TemplateInfo, len(names))
	for _, name := range names {
		if i, ok := Info(name); ok {
			info[name] = i
		}
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"templates": names,
		"info":      info,
	})
}

func (h *Handler) getTemplate(c *gin.Context) {
	name := c.Param("name")
	content, ok := Template(name)
	if !ok {
		respond.Error(c, http.StatusNotFound, "NOT_FOUND", "unknown template: "+name, nil)
		return
	}
	info, _ := Info(name)
	respond.JSON(c, http.StatusOK, gin.H{
		"name":       name,
		"info":       info,
		"content":    content,
		"validation": ValidateTemplate(content),
	})
}
