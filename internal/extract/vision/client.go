// Package vision calls the Google Cloud Vision REST API for OCR. PDFs use
// the files:annotate document endpoint, images use images:annotate.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"darzi-backend/internal/shared/telemetry"
	"darzi-backend/internal/shared/util"
)

const (
	defaultBaseURL = "https://vision.googleapis.com/v1"

	maxAttempts = 3
)

var retryDelay = time.Second

// Client is an OCR client for one API key. A client without a key is still
// constructible; it reports itself unavailable.
type Client struct {
	key     string
	baseURL string
	http    *http.Client
}

// New builds a Vision client. A missing or malformed key leaves the client
// unavailable instead of failing startup; Google API keys start with
// "AIza" and are 39 characters.
func New(apiKey string) *Client {
	apiKey = strings.TrimSpace(apiKey)
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
	if apiKey == "" {
		telemetry.Warn("vision.disabled", map[string]any{"reason": "no API key configured"})
		return c
	}
	if !strings.HasPrefix(apiKey, "AIza") || len(apiKey) != 39 {
		telemetry.Error("vision.bad_key", map[string]any{
			"reason": "key must start with AIza and be 39 characters",
			"key":    util.RedactKey(apiKey),
		})
		return c
	}
	c.key = apiKey
	telemetry.Info("vision.ready", map[string]any{"key": util.RedactKey(apiKey)})
	return c
}

// Available reports whether the client holds a usable key.
func (c *Client) Available() bool {
	return c.key != ""
}

type feature struct {
	Type string `json:"type"`
}

type inputConfig struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

type imageContext struct {
	LanguageHints []string `json:"languageHints"`
}

type fileAnnotateRequest struct {
	Requests []fileRequest `json:"requests"`
}

type fileRequest struct {
	InputConfig  inputConfig  `json:"inputConfig"`
	Features     []feature    `json:"features"`
	ImageContext imageContext `json:"imageContext"`
}

type imageContent struct {
	Content string `json:"content"`
}

type imageAnnotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type textAnnotation struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

type annotateResult struct {
	Error           *apiError        `json:"error"`
	Responses       []annotateResult `json:"responses"`
	FullText        *textAnnotation  `json:"fullTextAnnotation"`
	TextAnnotations []textAnnotation `json:"textAnnotations"`
}

// AnnotatePDF runs document text detection over a whole PDF and joins the
// per-page texts with newlines.
func (c *Client) AnnotatePDF(ctx context.Context, data []byte) (string, error) {
	if c.key == "" {
		return "", fmt.Errorf("vision API key is not configured")
	}

	body := fileAnnotateRequest{Requests: []fileRequest{{
		InputConfig: inputConfig{
			Content:  base64.StdEncoding.EncodeToString(data),
			MimeType: "application/pdf",
		},
		Features:     []feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		ImageContext: imageContext{LanguageHints: []string{"en"}},
	}}}

	out, err := c.post(ctx, c.baseURL+"/files:annotate?key="+c.key, body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, fileResp := range out.Responses {
		if fileResp.Error != nil {
			return "", fmt.Errorf("PDF processing error: %s", fileResp.Error.Message)
		}
		if len(fileResp.Responses) > 0 {
			for _, page := range fileResp.Responses {
				switch {
				case page.FullText != nil:
					b.WriteString(page.FullText.Text)
					b.WriteString("\n")
				case len(page.TextAnnotations) > 0:
					b.WriteString(page.TextAnnotations[0].Description)
					b.WriteString("\n")
				}
			}
			continue
		}
		if fileResp.FullText != nil {
			b.WriteString(fileResp.FullText.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// AnnotateImage runs plain text detection over a single image.
func (c *Client) AnnotateImage(ctx context.Context, data []byte) (string, error) {
	if c.key == "" {
		return "", fmt.Errorf("vision API key is not configured")
	}

	body := imageAnnotateRequest{Requests: []imageRequest{{
		Image:    imageContent{Content: base64.StdEncoding.EncodeToString(data)},
		Features: []feature{{Type: "TEXT_DETECTION"}},
	}}}

	out, err := c.post(ctx, c.baseURL+"/images:annotate?key="+c.key, body)
	if err != nil {
		return "", err
	}
	if len(out.Responses) == 0 {
		return "", nil
	}

	resp := out.Responses[0]
	if resp.Error != nil {
		return "", fmt.Errorf("image processing error: %s", resp.Error.Message)
	}
	if resp.FullText != nil {
		return resp.FullText.Text, nil
	}
	if len(resp.TextAnnotations) > 0 {
		return resp.TextAnnotations[0].Description, nil
	}
	return "", nil
}

// post sends one annotate request with retries on network errors, 5xx and
// 429. Error messages never include the request URL because the key rides
// in its query string.
func (c *Client) post(ctx context.Context, url string, body any) (*annotateResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("vision API request failed: %w", err)
			continue
		}
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("vision API read failed: %w", readErr)
			continue
		}
		if resp.StatusCode == http.StatusOK {
			return decodeResult(raw)
		}
		lastErr = fmt.Errorf("vision API returned status %d: %s", resp.StatusCode, excerpt(raw, 200))
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}

func decodeResult(raw []byte) (*annotateResult, error) {
	var out annotateResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("vision API returned malformed JSON: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("vision API error: %s", out.Error.Message)
	}
	return &out, nil
}

func excerpt(raw []byte, limit int) string {
	s := strings.TrimSpace(string(raw))
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
