// Package extract turns uploaded files and Google Drive links into plain
// text. Text-like extensions are read directly; PDFs and images go through
// the Vision OCR client. Routing is purely extension based so free local
// reads never trigger a paid OCR call.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"darzi-backend/internal/extract/vision"
	"darzi-backend/internal/shared/metrics"
	"darzi-backend/internal/shared/telemetry"
)

var (
	// ErrUnsupportedFormat means the extension is not in either routing table
	// and the content does not decode as text.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrVisionKeyMissing means a vision-routed file arrived but no Vision
	// API key is configured.
	ErrVisionKeyMissing = errors.New("Google Vision API key is not configured")
	// ErrDownloadFailed means a URL source could not be fetched.
	ErrDownloadFailed = errors.New("download failed")
)

// Extensions read directly with no external call.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".rtf": true,
	".csv": true,
	".log": true,
}

// Extensions routed to the Vision OCR API.
var visionExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".ico":  true,
}

// FileType classifies a filename by extension into "text" or "vision".
// The second return is false for unsupported extensions.
func FileType(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case textExtensions[ext]:
		return "text", true
	case visionExtensions[ext]:
		return "vision", true
	default:
		return "unsupported", false
	}
}

// Service routes extraction between the direct read path and the Vision
// client. Vision may be nil when no key is configured.
type Service struct {
	Vision *vision.Client

	http      *http.Client
	driveBase string
}

// NewService constructs a Service. The HTTP client is used for Drive
// downloads; OCR traffic uses the vision client's own.
func NewService(visionClient *vision.Client) *Service {
	return &Service{
		Vision: visionClient,
		http:   &http.Client{Timeout: 120 * time.Second},
	}
}

// VisionReady reports whether OCR-routed files can be processed.
func (s *Service) VisionReady() bool {
	return s.Vision != nil && s.Vision.Available()
}

// ExtractFile extracts text from an in-memory upload, routing by the
// filename's extension. Unknown extensions are tried as text and rejected
// only when the content looks binary.
func (s *Service) ExtractFile(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case textExtensions[ext]:
		metrics.IncExtraction("text")
		return decodeText(data), nil
	case visionExtensions[ext]:
		if !s.VisionReady() {
			metrics.IncExtractionFailed()
			return "", ErrVisionKeyMissing
		}
		text, err := s.ocr(ctx, ext, data)
		if err != nil {
			metrics.IncExtractionFailed()
			return "", err
		}
		metrics.IncExtraction("vision")
		telemetry.Info("extract.ocr_ok", map[string]any{"ext": ext, "chars": len(text)})
		return text, nil
	default:
		if !looksBinary(data) {
			metrics.IncExtraction("text")
			return decodeText(data), nil
		}
		metrics.IncExtractionFailed()
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// PDFText extracts text from a PDF locally, without any OCR call. Scanned
// PDFs with no embedded text layer come back empty.
func (s *Service) PDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		metrics.IncExtractionFailed()
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		metrics.IncExtractionFailed()
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		metrics.IncExtractionFailed()
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	metrics.IncExtraction("local_pdf")
	return strings.TrimSpace(buf.String()), nil
}

func (s *Service) ocr(ctx context.Context, ext string, data []byte) (string, error) {
	if ext == ".pdf" {
		return s.Vision.AnnotatePDF(ctx, data)
	}
	return s.Vision.AnnotateImage(ctx, data)
}

// decodeText reads bytes as UTF-8, stripping a BOM and replacing invalid
// sequences instead of failing.
func decodeText(data []byte) string {
	s := strings.TrimPrefix(string(data), "﻿")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return strings.TrimSpace(s)
}

// looksBinary is the gate for unknown extensions. NUL bytes mean the
// content is not worth decoding as text.
func looksBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) != -1
}
