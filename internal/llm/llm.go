// Package llm defines the provider abstraction for hosted generative
// models and the manager that routes calls across them. Providers only
// move prompts and raw text; turning model output into domain types
// happens here and in the feature packages.
package llm

import (
	"context"
	"errors"
)

// Provider is a single hosted generative model. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Name identifies the provider and model, e.g. "Gemini (gemini-1.5-flash)".
	Name() string
	// Available reports whether the provider has working credentials.
	Available() bool
	// GenerateText sends one prompt and returns the raw model output.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Provider-layer sentinel errors. Callers either map these onto HTTP
// statuses or degrade to local-only behavior.
var (
	ErrUnavailable     = errors.New("no LLM provider available")
	ErrTimeout         = errors.New("LLM provider timed out")
	ErrInvalidResponse = errors.New("LLM response could not be parsed")
)
