package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/hanifmaulana/aivoicebot/domain/repositories"
)

// MockLanguageModel is a canned-response implementation used by demo mode
// and tests.
type MockLanguageModel struct{}

var _ repositories.LanguageModel = (*MockLanguageModel)(nil)

// NewMockLanguageModel creates a new mock completion backend
func NewMockLanguageModel() *MockLanguageModel {
	return &MockLanguageModel{}
}

// Initialize implements repositories.LanguageModel
func (m *MockLanguageModel) Initialize(ctx context.Context) error {
	return nil
}

// Ready implements repositories.LanguageModel
func (m *MockLanguageModel) Ready() bool {
	return true
}

// Complete echoes the tail of the prompt back so demo conversations stay
// legible without a real backend.
func (m *MockLanguageModel) Complete(ctx context.Context, prompt string) (string, error) {
	var lastUser string
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "User: ") {
			lastUser = strings.TrimPrefix(line, "User: ")
		}
	}
	if lastUser == "" {
		return "Hello! I'm running in demo mode. What would you like to talk about?", nil
	}
	return fmt.Sprintf("Demo mode reply: I heard you say %q.", lastUser), nil
}
