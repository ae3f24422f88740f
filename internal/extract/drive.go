package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"darzi-backend/internal/shared/metrics"
	"darzi-backend/internal/shared/telemetry"
)

const (
	maxDownloadAttempts = 3

	// Drive serves an interstitial instead of the file to non-browser agents.
	driveUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var downloadRetryDelay = time.Second

// Shareable Drive and Docs link forms: /file/d/<id>/view, ?id=<id>,
// and the Docs /<id>/edit URL.
var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/([a-zA-Z0-9_-]+)/edit`),
}

var driveConfirmPattern = regexp.MustCompile(`href="(/uc\?export=download[^"]*)"`)

// IsDriveURL reports whether the URL points at Google Drive or Google Docs.
func IsDriveURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.Contains(lower, "drive.google.com") || strings.Contains(lower, "docs.google.com")
}

// DriveFileID pulls the file ID out of a shareable Drive or Docs URL.
// Returns "" when no known form matches.
func DriveFileID(rawURL string) string {
	for _, pattern := range driveIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractURL downloads a Google Drive file and extracts its text. PDFs go
// through OCR, everything else is read as text.
func (s *Service) ExtractURL(ctx context.Context, rawURL string) (string, error) {
	if !IsDriveURL(rawURL) {
		metrics.IncExtractionFailed()
		return "", fmt.Errorf("%w: only Google Drive and Google Docs URLs are supported", ErrDownloadFailed)
	}

	data, ext, err := s.downloadDrive(ctx, rawURL)
	if err != nil {
		metrics.IncExtractionFailed()
		return "", err
	}
	telemetry.Info("extract.drive_downloaded", map[string]any{"ext": ext, "bytes": len(data)})

	if ext == ".pdf" {
		if !s.VisionReady() {
			metrics.IncExtractionFailed()
			return "", ErrVisionKeyMissing
		}
		text, err := s.Vision.AnnotatePDF(ctx, data)
		if err != nil {
			metrics.IncExtractionFailed()
			return "", err
		}
		metrics.IncExtraction("url")
		return text, nil
	}

	metrics.IncExtraction("url")
	return decodeText(data), nil
}

// downloadDrive fetches the file behind a Drive URL and infers its
// extension from the Content-Type, correcting by content sniff.
func (s *Service) downloadDrive(ctx context.Context, rawURL string) ([]byte, string, error) {
	fileID := DriveFileID(rawURL)
	if fileID == "" {
		return nil, "", fmt.Errorf("%w: could not extract file ID from Google Drive URL", ErrDownloadFailed)
	}

	downloadURL := s.driveBaseURL() + "/uc?export=download&id=" + fileID
	data, contentType, err := s.get(ctx, downloadURL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	// Large files get a virus-scan interstitial with a confirm link.
	if bytes.Contains(bytes.ToLower(data), []byte("virus scan warning")) {
		if m := driveConfirmPattern.FindSubmatch(data); m != nil {
			confirmURL := s.driveBaseURL() + strings.ReplaceAll(string(m[1]), "&amp;", "&")
			data, contentType, err = s.get(ctx, confirmURL)
			if err != nil {
				return nil, "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
			}
		}
	}

	ext := extFromContentType(contentType, rawURL)
	if bytes.HasPrefix(data, []byte("%PDF")) && ext != ".pdf" {
		ext = ".pdf"
	}
	return data, ext, nil
}

func (s *Service) driveBaseURL() string {
	if s.driveBase != "" {
		return s.driveBase
	}
	return "https://drive.google.com"
}

func extFromContentType(contentType, sourceURL string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return ".pdf"
	case strings.Contains(ct, "text"), strings.Contains(ct, "/vnd.google-apps.document"):
		return ".txt"
	case strings.Contains(strings.ToLower(sourceURL), "pdf"):
		return ".pdf"
	default:
		return ".txt"
	}
}

// get downloads a URL with retries on network errors, 5xx and 429. Other
// statuses fail immediately.
func (s *Service) get(ctx context.Context, url string) ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxDownloadAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(time.Duration(attempt-1) * downloadRetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("User-Agent", driveUserAgent)

		resp, err := s.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		if resp.StatusCode == http.StatusOK {
			return body, resp.Header.Get("Content-Type"), nil
		}
		lastErr = fmt.Errorf("download returned status %d", resp.StatusCode)
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, "", lastErr
		}
	}
	return nil, "", fmt.Errorf("request failed after %d attempts: %w", maxDownloadAttempts, lastErr)
}
