package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanResponse strips the markdown code fences models tend to wrap
// around their output.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```latex"):
		s = s[len("```latex"):]
	case strings.HasPrefix(s, "```"):
		s = s[3:]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the JSON object embedded in raw, tolerating
// fences and surrounding prose.
func ExtractJSONObject(raw string) (string, error) {
	payload := CleanResponse(raw)
	if payload == "" {
		return "", fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}
	if json.Valid([]byte(payload)) {
		return payload, nil
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}

	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", fmt.Errorf("%w: malformed JSON object", ErrInvalidResponse)
	}
	return candidate, nil
}
