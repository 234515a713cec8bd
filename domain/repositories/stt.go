package repositories

import "context"

// Transcription is the result of one speech recognition call.
type Transcription struct {
	// RawText is the transcript exactly as returned by the backend
	RawText string `json:"raw_text"`
	// CleanedText has filler words removed; this is what downstream
	// handlers feed into chat completion
	CleanedText string `json:"cleaned_text"`
	// Confidence is the backend-reported score in [0, 1]
	Confidence float64 `json:"confidence"`
}

// Transcriber abstracts speech recognition services
type Transcriber interface {
	// Transcribe converts a complete audio payload to text
	Transcribe(ctx context.Context, audioData []byte) (Transcription, error)
}
