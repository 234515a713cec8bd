package repositories

import "context"

// SpeechSynthesizer converts text to raw linear PCM samples.
// The returned bytes are headerless; callers frame them with the WAV codec.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, voice string) ([]byte, error)
}
