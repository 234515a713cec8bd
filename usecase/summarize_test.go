package usecase

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

// scriptedLLM answers each prompt through a caller-supplied function and
// records every prompt it saw.
type scriptedLLM struct {
	respond func(prompt string) (string, error)
	prompts []string
}

func (s *scriptedLLM) Initialize(ctx context.Context) error { return nil }
func (s *scriptedLLM) Ready() bool                          { return true }
func (s *scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.respond(prompt)
}

func newSummarizeGateway(model repositories.LanguageModel) *Gateway {
	return NewGateway(model, nil, nil, zap.NewNop())
}

func TestSummarizeRunsThreeStages(t *testing.T) {
	model := &scriptedLLM{respond: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Analyze the sentiment"):
			return " positive ", nil
		case strings.HasPrefix(prompt, "Extract exactly 5 key facts"):
			return "1. fact", nil
		case strings.HasPrefix(prompt, "Summarize the following content"):
			return "a short summary", nil
		}
		t.Errorf("unexpected prompt: %s", prompt)
		return "", nil
	}}

	result, err := newSummarizeGateway(model).Summarize(context.Background(), "some interesting text")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(model.prompts) != 3 {
		t.Errorf("backend calls = %d, want 3 (short summary must not be condensed)", len(model.prompts))
	}
	if result.Sentiment != "positive" {
		t.Errorf("Sentiment = %q, want trimmed %q", result.Sentiment, "positive")
	}
	if result.KeyFacts != "1. fact" || result.Summary != "a short summary" {
		t.Errorf("result = %+v", result)
	}
}

func TestSummarizeCondensesLongSummaries(t *testing.T) {
	longSummary := strings.Repeat("word ", condenseTriggerWords+1)
	model := &scriptedLLM{respond: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Analyze the sentiment"):
			return "neutral", nil
		case strings.HasPrefix(prompt, "Extract exactly 5 key facts"):
			return "facts", nil
		case strings.HasPrefix(prompt, "Summarize the following content"):
			return longSummary, nil
		case strings.HasPrefix(prompt, "Resummarize the following text"):
			if !strings.Contains(prompt, "word word") {
				t.Error("condensation prompt missing the long summary")
			}
			return "- condensed", nil
		}
		t.Errorf("unexpected prompt: %s", prompt)
		return "", nil
	}}

	result, err := newSummarizeGateway(model).Summarize(context.Background(), "lots of text")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(model.prompts) != 4 {
		t.Errorf("backend calls = %d, want 4 with condensation", len(model.prompts))
	}
	if result.Summary != "- condensed" {
		t.Errorf("Summary = %q, want the condensed pass output", result.Summary)
	}
}

func TestSummarizeAbortsOnFirstFailure(t *testing.T) {
	model := &scriptedLLM{respond: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Extract exactly 5 key facts") {
			return "", repositories.ErrBackendUnavailable
		}
		return "ok", nil
	}}

	_, err := newSummarizeGateway(model).Summarize(context.Background(), "text")
	if err == nil {
		t.Fatal("Summarize succeeded despite a failing stage")
	}
	if len(model.prompts) != 2 {
		t.Errorf("backend calls = %d, want 2 (pipeline must abort at the failed stage)", len(model.prompts))
	}
}
