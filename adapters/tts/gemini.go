package tts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

const (
	defaultModel = "gemini-2.5-flash-preview-tts"

	// DefaultVoice is used when a request carries no voice selector.
	DefaultVoice = "Kore"
)

// GeminiTTS implements SpeechSynthesizer using Gemini's audio response
// modality. The returned bytes are raw 16-bit mono PCM at 24 kHz.
type GeminiTTS struct {
	apiKey string
	model  string
	logger *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

var _ repositories.SpeechSynthesizer = (*GeminiTTS)(nil)

// NewGeminiTTS creates a new Gemini speech synthesis adapter
func NewGeminiTTS(apiKey, model string, logger *zap.Logger) *GeminiTTS {
	if model == "" {
		model = defaultModel
	}
	return &GeminiTTS{
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (g *GeminiTTS) ensureClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key not configured", repositories.ErrSynthesisFailed)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", repositories.ErrSynthesisFailed, err)
	}
	g.client = client
	return client, nil
}

// Synthesize converts text into raw PCM samples spoken with the given
// prebuilt voice.
func (g *GeminiTTS) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text cannot be empty", repositories.ErrSynthesisFailed)
	}
	if voice == "" {
		voice = DefaultVoice
	}

	client, err := g.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Generating speech",
		zap.String("voice", voice),
		zap.Int("textLength", len(text)))

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	response, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrSynthesisFailed, err)
	}

	for _, candidate := range response.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: no audio data in response", repositories.ErrSynthesisFailed)
}
