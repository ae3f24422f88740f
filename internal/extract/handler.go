package extract

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"darzi-backend/internal/shared/server/respond"
	"darzi-backend/internal/shared/util"
)

// Handler exposes the extraction endpoints.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/api/extract", h.extractFile)
	rg.POST("/api/extract-url", h.extractURL)
}

func (h *Handler) extractFile(c *gin.Context) {
	// Headroom for multipart framing so the explicit size check below
	// produces the 413, not MaxBytesReader.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required", nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		msg := fmt.Sprintf("File too large. Maximum size is %s. Your file is %s.",
			util.FormatFileSize(h.MaxUploadBytes), util.FormatFileSize(fileHeader.Size))
		respond.Error(c, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", msg, nil)
		return
	}

	filename := fileHeader.Filename
	kind, supported := FileType(filename)
	if !supported {
		msg := fmt.Sprintf("Unsupported file type: %s. Supported types: PDF, images (PNG, JPG, etc.), and text files (TXT, MD, CSV).", filename)
		respond.Error(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", msg, nil)
		return
	}
	if kind == "vision" && !h.Svc.VisionReady() {
		respond.Error(c, http.StatusBadRequest, "PROVIDER_UNAVAILABLE",
			"Google Vision API key is required for PDF and image files. Please configure GOOGLE_API_KEY environment variable.", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read file", nil)
		return
	}
	if name, err := util.SanitizeFileName(filename); err == nil {
		filename = name
	} else {
		filename = "upload"
	}

	text, err := h.Svc.ExtractFile(c.Request.Context(), filename, data)
	if err != nil {
		h.respondExtractError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"text":    text,
		"file_info": gin.H{
			"name": filename,
			"size": util.FormatFileSize(int64(len(data))),
			"type": methodTag(kind),
		},
	})
}

// methodTag converts the routing kind into the reported extraction method:
// text extensions are read directly, vision extensions go through OCR.
func methodTag(kind string) string {
	if kind == "text" {
		return "direct"
	}
	return kind
}

func (h *Handler) extractURL(c *gin.Context) {
	var payload struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.URL) == "" {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "url is required", nil)
		return
	}

	parsed, err := url.Parse(strings.TrimSpace(payload.URL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "url must be an http or https link", nil)
		return
	}

	text, err := h.Svc.ExtractURL(c.Request.Context(), parsed.String())
	if err != nil {
		h.respondExtractError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"text":    text,
		"file_info": gin.H{
			"name": "from_url",
			"size": nil,
			"type": "auto",
		},
	})
}

func (h *Handler) respondExtractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error(), nil)
	case errors.Is(err, ErrVisionKeyMissing):
		respond.Error(c, http.StatusBadRequest, "PROVIDER_UNAVAILABLE",
			"Google Vision API key is required for PDF and image files. Please configure GOOGLE_API_KEY environment variable.", nil)
	case errors.Is(err, ErrDownloadFailed):
		respond.Error(c, http.StatusBadRequest, "DOWNLOAD_FAILURE", err.Error(), nil)
	default:
		respond.Error(c, http.StatusBadRequest, "EXTRACTION_FAILURE", "Failed to extract text", err.Error())
	}
}
