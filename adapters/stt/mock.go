package stt

import (
	"context"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

// MockTranscriber returns a fixed transcription, used by demo mode and tests.
type MockTranscriber struct {
	// Result is returned verbatim from Transcribe; tests set it to drive
	// confidence and empty-text rejection paths.
	Result repositories.Transcription
	Err    error
}

var _ repositories.Transcriber = (*MockTranscriber)(nil)

// NewMockTranscriber creates a mock that accepts everything it hears.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		Result: repositories.Transcription{
			RawText:     "hello from demo mode",
			CleanedText: "hello from demo mode",
			Confidence:  0.95,
		},
	}
}

// Transcribe implements repositories.Transcriber
func (m *MockTranscriber) Transcribe(ctx context.Context, audioData []byte) (repositories.Transcription, error) {
	if m.Err != nil {
		return repositories.Transcription{}, m.Err
	}
	return m.Result, nil
}
