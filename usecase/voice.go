package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/internal/audio"
	"github.com/hanifmaulana/aivoicebot/internal/audiocache"
)

// VoiceService produces playable audio for text, caching encoded results so
// identical (text, voice) requests hit the speech backend exactly once.
type VoiceService struct {
	gateway *Gateway
	cache   *audiocache.Cache
	format  audio.Format
	logger  *zap.Logger
}

// NewVoiceService creates a voice service over the shared gateway and cache.
func NewVoiceService(gateway *Gateway, cache *audiocache.Cache, logger *zap.Logger) *VoiceService {
	return &VoiceService{
		gateway: gateway,
		cache:   cache,
		format:  audio.DefaultFormat(),
		logger:  logger,
	}
}

// GenerateSpeech returns WAV-framed audio for text in the given voice.
// The second return reports whether the audio came from the cache.
func (v *VoiceService) GenerateSpeech(ctx context.Context, text, voice string) ([]byte, bool, error) {
	key := audiocache.Key(text, voice)
	if data, ok := v.cache.Get(key); ok {
		v.logger.Info("Audio cache hit", zap.String("voice", voice), zap.Int("textLength", len(text)))
		return data, true, nil
	}

	start := time.Now()
	pcm, err := v.gateway.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, false, err
	}

	wav := audio.EncodeWAV(pcm, v.format)
	v.cache.Put(key, wav)

	v.logger.Info("Speech generated",
		zap.String("voice", voice),
		zap.Int("pcmBytes", len(pcm)),
		zap.Duration("elapsed", time.Since(start)))

	return wav, false, nil
}

// CacheStats exposes cache occupancy for the dashboard.
func (v *VoiceService) CacheStats() audiocache.Stats {
	return v.cache.Stats()
}

// ClearCache drops all cached audio.
func (v *VoiceService) ClearCache() {
	v.cache.Clear()
	v.logger.Info("Audio cache cleared")
}
