package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

const (
	defaultModel       = "gemini-2.0-flash-exp"
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
	maxAttempts        = 3
)

// GeminiLLM implements the LanguageModel interface using Google's Gemini API
type GeminiLLM struct {
	apiKey          string
	model           string
	temperature     float32
	maxOutputTokens int32
	logger          *zap.Logger

	mu          sync.Mutex
	client      *genai.Client
	initialized bool
}

var _ repositories.LanguageModel = (*GeminiLLM)(nil)

// NewGeminiLLM creates a new Gemini completion adapter. The client itself is
// built lazily by Initialize so a missing key surfaces as unreadiness, not a
// construction failure.
func NewGeminiLLM(apiKey, model string, logger *zap.Logger) *GeminiLLM {
	if model == "" {
		model = defaultModel
	}
	return &GeminiLLM{
		apiKey:          apiKey,
		model:           model,
		temperature:     defaultTemperature,
		maxOutputTokens: defaultMaxTokens,
		logger:          logger,
	}
}

// Initialize creates the underlying genai client. Calling it again after a
// successful initialization is a no-op.
func (g *GeminiLLM) Initialize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.initialized {
		return nil
	}
	if g.apiKey == "" {
		return fmt.Errorf("%w: gemini API key not configured", repositories.ErrBackendUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create gemini client: %v", repositories.ErrBackendUnavailable, err)
	}

	g.client = client
	g.initialized = true
	g.logger.Info("Gemini client initialized", zap.String("model", g.model))
	return nil
}

// Ready reports whether Initialize has succeeded.
func (g *GeminiLLM) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initialized
}

// Complete sends the prompt and returns the model's text reply. A client that
// was never initialized gets one initialization attempt before failing.
func (g *GeminiLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if !g.Ready() {
		if err := g.Initialize(ctx); err != nil {
			return "", err
		}
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxOutputTokens,
	}

	var response *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		response, err = g.client.Models.GenerateContent(ctx, g.model, contents, config)
		if err == nil {
			break
		}
		g.logger.Warn("Gemini completion failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		if attempt < maxAttempts-1 {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", repositories.ErrBackendUnavailable, err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates in response", repositories.ErrBackendUnavailable)
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: empty completion", repositories.ErrBackendUnavailable)
	}

	return strings.TrimSpace(text.String()), nil
}
