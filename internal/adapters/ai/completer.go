// Package ai is the boundary to the generative drafting collaborator.
// Orchestrators build prompts, a Completer produces text, and DecodeJSON
// turns model output into typed values. Everything the model produces is
// a draft for a human to review, never an applied change.
package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no drafting backend is available.
var ErrNotConfigured = errors.New("ai drafting is not configured")

// Request carries one completion request to the backend.
type Request struct {
	System    string // optional system instruction
	Prompt    string
	WantsJSON bool // ask the backend for a JSON response body
}

// Completer produces a text completion for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
