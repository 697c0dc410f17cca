package llm

import (
	"context"
)

// MockClient is a test double for llm.Client.
type MockClient struct {
	Result     []Advice
	Err        error
	LastPrompt string
}

// Explain returns the configured result and error.
func (m *MockClient) Explain(_ context.Context, prompt string) ([]Advice, error) {
	m.LastPrompt = prompt
	return m.Result, m.Err
}
