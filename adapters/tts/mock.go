package tts

import (
	"context"
	"sync/atomic"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

// MockSynthesizer produces a short deterministic PCM ramp, used by demo mode
// and tests. It counts calls so cache tests can assert hit behavior.
type MockSynthesizer struct {
	calls atomic.Int64
}

var _ repositories.SpeechSynthesizer = (*MockSynthesizer)(nil)

// NewMockSynthesizer creates a new mock speech backend
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize implements repositories.SpeechSynthesizer
func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	m.calls.Add(1)
	pcm := make([]byte, 480) // 10ms of silence-ish samples at 24kHz/16-bit
	for i := range pcm {
		pcm[i] = byte(i % 7)
	}
	return pcm, nil
}

// Calls returns how many times Synthesize has been invoked.
func (m *MockSynthesizer) Calls() int64 {
	return m.calls.Load()
}
