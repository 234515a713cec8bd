package usecase

import (
	"bytes"
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/adapters/llm"
	"github.com/hanifmaulana/aivoicebot/adapters/tts"
	"github.com/hanifmaulana/aivoicebot/internal/audiocache"
)

func newVoiceFixture(t *testing.T) (*VoiceService, *tts.MockSynthesizer) {
	t.Helper()
	logger := zap.NewNop()
	synth := tts.NewMockSynthesizer()
	gateway := NewGateway(llm.NewMockLanguageModel(), synth, nil, logger)
	return NewVoiceService(gateway, audiocache.New(3), logger), synth
}

func TestGenerateSpeechFramesAsWAV(t *testing.T) {
	voice, _ := newVoiceFixture(t)

	wav, cached, err := voice.GenerateSpeech(context.Background(), "hello", "Kore")
	if err != nil {
		t.Fatalf("GenerateSpeech failed: %v", err)
	}
	if cached {
		t.Error("first request reported a cache hit")
	}
	if !bytes.HasPrefix(wav, []byte("RIFF")) {
		t.Error("output is not WAV framed")
	}
	if len(wav) != 480+44 {
		t.Errorf("wav length = %d, want mock PCM plus header", len(wav))
	}
}

func TestGenerateSpeechCachesByTextAndVoice(t *testing.T) {
	voice, synth := newVoiceFixture(t)
	ctx := context.Background()

	first, _, err := voice.GenerateSpeech(ctx, "hello", "Kore")
	if err != nil {
		t.Fatalf("GenerateSpeech failed: %v", err)
	}
	second, cached, err := voice.GenerateSpeech(ctx, "hello", "Kore")
	if err != nil {
		t.Fatalf("GenerateSpeech failed: %v", err)
	}
	if !cached {
		t.Error("identical request missed the cache")
	}
	if !bytes.Equal(first, second) {
		t.Error("cached audio differs from the original")
	}
	if got := synth.Calls(); got != 1 {
		t.Errorf("synthesis calls = %d, want 1", got)
	}

	if _, cached, _ := voice.GenerateSpeech(ctx, "hello", "Puck"); cached {
		t.Error("a different voice must not share the cache entry")
	}
	if got := synth.Calls(); got != 2 {
		t.Errorf("synthesis calls = %d, want 2 after a new voice", got)
	}
}

func TestClearCacheForcesResynthesis(t *testing.T) {
	voice, synth := newVoiceFixture(t)
	ctx := context.Background()

	voice.GenerateSpeech(ctx, "hello", "Kore")
	voice.ClearCache()
	if got := voice.CacheStats().Size; got != 0 {
		t.Errorf("cache size after clear = %d, want 0", got)
	}

	_, cached, err := voice.GenerateSpeech(ctx, "hello", "Kore")
	if err != nil {
		t.Fatalf("GenerateSpeech failed: %v", err)
	}
	if cached {
		t.Error("request after clear reported a cache hit")
	}
	if got := synth.Calls(); got != 2 {
		t.Errorf("synthesis calls = %d, want 2", got)
	}
}
