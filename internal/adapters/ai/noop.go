package ai

import "context"

// NoopCompleter is used when no API key is configured. Every request
// fails with ErrNotConfigured so handlers can report the condition
// instead of silently producing empty drafts.
type NoopCompleter struct{}

// Complete always returns ErrNotConfigured.
func (NoopCompleter) Complete(ctx context.Context, req Request) (string, error) {
	return "", ErrNotConfigured
}
