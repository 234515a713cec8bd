package repositories

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by backend adapters. Handlers match on these to
// pick the client-facing message; the wrapped detail goes to the activity log.
var (
	ErrBackendUnavailable  = errors.New("ai backend unavailable")
	ErrSynthesisFailed     = errors.New("speech synthesis failed")
	ErrTranscriptionFailed = errors.New("speech transcription failed")
)

// LanguageModel abstracts any text completion provider
type LanguageModel interface {
	// Initialize prepares the underlying client. Idempotent.
	Initialize(ctx context.Context) error
	// Ready reports whether the provider has been initialized successfully
	Ready() bool
	// Complete takes a fully built prompt and returns the model's reply
	Complete(ctx context.Context, prompt string) (string, error)
}
