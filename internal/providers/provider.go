package providers

import (
	"context"
	"fmt"
)

// Request contains one chunk submission to the completion API.
//
// Model carries the rotated pool value: in this design the same value
// selects the model and identifies the credential lane, matching the
// upstream service's usage.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
	TopP         float64
}

// Response contains the raw completion text.
type Response struct {
	Content    string
	TokensUsed int
}

// Analyzer is the completion-backend abstraction. Analyze performs exactly
// one request attempt; retry and rate limiting are composed around it by
// the caller.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a backend by name.
func New(backend string) (Analyzer, error) {
	switch backend {
	case "groq":
		return NewGroq()
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}
