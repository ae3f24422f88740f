package hybrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"darzi-backend/internal/extract"
	"darzi-backend/internal/llm"
	"darzi-backend/internal/shared/server/respond"
	"darzi-backend/internal/shared/util"
)

// minResumeLength is the shortest input accepted as a plausible resume.
const minResumeLength = 50

// Extractor pulls plain text out of an uploaded file.
type Extractor interface {
	ExtractFile(ctx context.Context, filename string, data []byte) (string, error)
	PDFText(data []byte) (string, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	Files          Extractor
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, files Extractor, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, Files: files, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches parsing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse", h.parseText)
	rg.POST("/parse-pdf", h.parsePDF)
	rg.POST("/parse-enhanced", h.parseEnhanced)
	rg.POST("/parse-llm-only", h.parseLLMOnly)
	rg.POST("/parse-local-only", h.parseLocalOnly)
	rg.GET("/parser-status", h.parserStatus)
}

func (h *Handler) parseText(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read request body", nil)
		return
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No text provided", nil)
		return
	}
	if len(text) < minResumeLength {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Text too short to be a valid resume", nil)
		return
	}

	res := h.Svc.Parse(c.Request.Context(), text, ParseOptions{UseLLM: true})
	respond.JSON(c, http.StatusOK, parseEnvelope(res, len(text)))
}

func (h *Handler) parsePDF(c *gin.Context) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Only PDF files are supported", nil)
		return
	}

	text, err := h.Files.PDFText(data)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "EXTRACTION_FAILURE", "unable to extract text from PDF", gin.H{"error": err.Error()})
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		respond.Error(c, http.StatusBadRequest, "EXTRACTION_FAILURE", "No text could be extracted from the file", nil)
		return
	}

	parsed := h.Svc.ParseLocalOnly(text)
	parsed.ParsingSource = "local_pdf"
	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"data":    parsed,
		"metadata": gin.H{
			"filename":       filename,
			"file_size":      util.FormatFileSize(int64(len(data))),
			"parsing_method": "local_pdf",
			"confidence":     parsed.ConfidenceScore,
		},
	})
}

func (h *Handler) parseEnhanced(c *gin.Context) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	text, ok := h.extractUpload(c, filename, data)
	if !ok {
		return
	}

	res := h.Svc.Parse(c.Request.Context(), text, ParseOptions{
		UseLLM:            boolValue(c, "use_llm", true),
		PreferredProvider: formOrQuery(c, "preferred_provider"),
	})
	respond.JSON(c, http.StatusOK, uploadEnvelope(res, filename, int64(len(data)), len(text)))
}

func (h *Handler) parseLLMOnly(c *gin.Context) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	text, ok := h.extractUpload(c, filename, data)
	if !ok {
		return
	}

	parsed, err := h.Svc.ParseLLMOnly(c.Request.Context(), text, formOrQuery(c, "preferred_provider"))
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", "no LLM provider available", nil)
		case errors.Is(err, llm.ErrTimeout):
			respond.Error(c, http.StatusGatewayTimeout, "PROVIDER_TIMEOUT", "LLM provider timed out", nil)
		case errors.Is(err, llm.ErrInvalidResponse):
			respond.Error(c, http.StatusBadGateway, "PROVIDER_RESPONSE_INVALID", "LLM response could not be parsed", nil)
		default:
			respond.Error(c, http.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", "LLM parsing failed", gin.H{"error": err.Error()})
		}
		return
	}
	respond.JSON(c, http.StatusOK, uploadEnvelope(Result{Resume: parsed}, filename, int64(len(data)), len(text)))
}

func (h *Handler) parseLocalOnly(c *gin.Context) {
	filename, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	text, ok := h.extractUpload(c, filename, data)
	if !ok {
		return
	}

	parsed := h.Svc.ParseLocalOnly(text)
	respond.JSON(c, http.StatusOK, uploadEnvelope(Result{Resume: parsed}, filename, int64(len(data)), len(text)))
}

func (h *Handler) parserStatus(c *gin.Context) {
	status := h.Svc.Status()
	status["status"] = "ok"
	respond.JSON(c, http.StatusOK, status)
}

// readUpload reads the multipart "file" field, enforcing the configured
// size limit. It writes the error response itself and reports ok=false.
func (h *Handler) readUpload(c *gin.Context) (string, []byte, bool) {
	// Allow some headroom for multipart framing so the explicit size check
	// below produces the 413, not MaxBytesReader.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required", nil)
		return "", nil, false
	}
	if fileHeader.Size > h.MaxUploadBytes {
		msg := fmt.Sprintf("File too large: %s exceeds the %s limit",
			util.FormatFileSize(fileHeader.Size), util.FormatFileSize(h.MaxUploadBytes))
		respond.Error(c, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", msg, nil)
		return "", nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read file", nil)
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read file", nil)
		return "", nil, false
	}

	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		name = "upload"
	}
	return name, data, true
}

// extractUpload runs text extraction and maps extraction failures onto the
// error envelope. It reports ok=false after writing the response.
func (h *Handler) extractUpload(c *gin.Context, filename string, data []byte) (string, bool) {
	text, err := h.Files.ExtractFile(c.Request.Context(), filename, data)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error(), nil)
		case errors.Is(err, extract.ErrVisionKeyMissing):
			respond.Error(c, http.StatusBadRequest, "PROVIDER_UNAVAILABLE", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadRequest, "EXTRACTION_FAILURE", "unable to extract text from file", gin.H{"error": err.Error()})
		}
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		respond.Error(c, http.StatusBadRequest, "EXTRACTION_FAILURE", "No text could be extracted from the file", nil)
		return "", false
	}
	return text, true
}

func parseEnvelope(res Result, textLen int) gin.H {
	payload := gin.H{
		"success": true,
		"data":    res.Resume,
		"metadata": gin.H{
			"text_length":    textLen,
			"parsing_method": res.Resume.ParsingSource,
			"confidence":     res.Resume.ConfidenceScore,
		},
	}
	if len(res.Warnings) > 0 {
		payload["warnings"] = res.Warnings
	}
	return payload
}

func uploadEnvelope(res Result, filename string, sizeBytes int64, textLen int) gin.H {
	payload := gin.H{
		"status":      "success",
		"filename":    filename,
		"file_size":   util.FormatFileSize(sizeBytes),
		"text_length": textLen,
		"data":        res.Resume,
		"metadata": gin.H{
			"parsing_method": res.Resume.ParsingSource,
			"confidence":     res.Resume.ConfidenceScore,
		},
	}
	if len(res.Warnings) > 0 {
		payload["warnings"] = res.Warnings
	}
	return payload
}

func formOrQuery(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}

func boolValue(c *gin.Context, key string, fallback bool) bool {
	raw := formOrQuery(c, key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
