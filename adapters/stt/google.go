package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

// Recognition settings matching the TTS output rate.
const (
	sampleRateHertz = 24000
	languageCode    = "en-US"
)

var fillerWords = map[string]struct{}{
	"um":  {},
	"uh":  {},
	"hmm": {},
}

// GoogleTranscriber implements Transcriber using Google Cloud Speech-to-Text.
// Credentials come from the ambient Google Cloud environment
// (GOOGLE_APPLICATION_CREDENTIALS).
type GoogleTranscriber struct {
	logger *zap.Logger
}

var _ repositories.Transcriber = (*GoogleTranscriber)(nil)

// NewGoogleTranscriber creates a new Google Cloud STT adapter
func NewGoogleTranscriber(logger *zap.Logger) *GoogleTranscriber {
	return &GoogleTranscriber{logger: logger}
}

// Transcribe runs one batch recognition over the full audio payload and
// returns the best alternative with its confidence.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audioData []byte) (repositories.Transcription, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return repositories.Transcription{}, fmt.Errorf("%w: failed to create speech client: %v", repositories.ErrTranscriptionFailed, err)
	}
	defer client.Close()

	response, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            sampleRateHertz,
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return repositories.Transcription{}, fmt.Errorf("%w: %v", repositories.ErrTranscriptionFailed, err)
	}

	if len(response.Results) == 0 || len(response.Results[0].Alternatives) == 0 {
		return repositories.Transcription{}, nil
	}

	best := response.Results[0].Alternatives[0]
	transcription := repositories.Transcription{
		RawText:     best.Transcript,
		CleanedText: RemoveFillerWords(best.Transcript),
		Confidence:  float64(best.Confidence),
	}

	g.logger.Info("Transcription completed",
		zap.Float64("confidence", transcription.Confidence),
		zap.Int("textLength", len(transcription.CleanedText)))

	return transcription, nil
}

// RemoveFillerWords drops common hesitation words from a transcript.
func RemoveFillerWords(text string) string {
	var kept []string
	for _, word := range strings.Fields(text) {
		if _, filler := fillerWords[strings.ToLower(word)]; filler {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
