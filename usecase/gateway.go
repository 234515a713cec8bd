// Package usecase holds the services the message router is built on: the AI
// gateway facade, the summarization pipeline and the cached voice service.
package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

// Gateway is the single call surface for every external AI capability.
// It is constructed once in main and injected into the router; handlers never
// talk to a backend adapter directly.
type Gateway struct {
	llm    repositories.LanguageModel
	tts    repositories.SpeechSynthesizer
	stt    repositories.Transcriber
	logger *zap.Logger
}

// NewGateway creates a facade over the three backend adapters.
func NewGateway(
	llm repositories.LanguageModel,
	tts repositories.SpeechSynthesizer,
	stt repositories.Transcriber,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		llm:    llm,
		tts:    tts,
		stt:    stt,
		logger: logger,
	}
}

// Initialize prepares the completion backend. Idempotent; a failure leaves
// the gateway unready and the next call retries.
func (g *Gateway) Initialize(ctx context.Context) error {
	return g.llm.Initialize(ctx)
}

// Ready reports whether the completion backend is initialized.
func (g *Gateway) Ready() bool {
	return g.llm.Ready()
}

// Complete forwards a prompt to the completion backend.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	return g.llm.Complete(ctx, prompt)
}

// Synthesize converts text to raw PCM via the speech backend.
func (g *Gateway) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	return g.tts.Synthesize(ctx, text, voice)
}

// Transcribe converts audio to text via the recognition backend.
func (g *Gateway) Transcribe(ctx context.Context, audioData []byte) (repositories.Transcription, error) {
	return g.stt.Transcribe(ctx, audioData)
}
