package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Condensation thresholds for the final pipeline stage.
const (
	condenseTriggerWords = 300
	condenseTargetWords  = 200
)

// SummaryResult carries the combined output of the summarization pipeline.
type SummaryResult struct {
	Sentiment string `json:"sentiment"`
	KeyFacts  string `json:"key_facts"`
	Summary   string `json:"summary"`
}

// Summarize runs the multi-call pipeline: sentiment classification, key-fact
// extraction, free-form summarization, and a conditional condensation pass
// when the summary runs long. Any backend failure aborts the whole sequence;
// partial results are never returned.
func (g *Gateway) Summarize(ctx context.Context, text string) (SummaryResult, error) {
	sentiment, err := g.Complete(ctx, fmt.Sprintf(
		"Analyze the sentiment of the following text: '%s'. Respond with a single word: positive, negative, or neutral.", text))
	if err != nil {
		return SummaryResult{}, fmt.Errorf("sentiment classification failed: %w", err)
	}

	facts, err := g.Complete(ctx, fmt.Sprintf(
		"Extract exactly 5 key facts from the following text:\n\n%s", text))
	if err != nil {
		return SummaryResult{}, fmt.Errorf("key fact extraction failed: %w", err)
	}

	summary, err := g.Complete(ctx, fmt.Sprintf(
		"Summarize the following content concisely:\n\n%s", text))
	if err != nil {
		return SummaryResult{}, fmt.Errorf("summarization failed: %w", err)
	}

	if len(strings.Fields(summary)) > condenseTriggerWords {
		g.logger.Info("Summary over threshold, condensing",
			zap.Int("words", len(strings.Fields(summary))))
		condensed, err := g.Complete(ctx, fmt.Sprintf(
			"Resummarize the following text to under %d words using bullet points:\n\n%s",
			condenseTargetWords, summary))
		if err != nil {
			return SummaryResult{}, fmt.Errorf("condensation failed: %w", err)
		}
		summary = condensed
	}

	return SummaryResult{
		Sentiment: strings.TrimSpace(sentiment),
		KeyFacts:  strings.TrimSpace(facts),
		Summary:   strings.TrimSpace(summary),
	}, nil
}
