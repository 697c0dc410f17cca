package llm

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

// mockGenerativeClient is a test double for GenerativeClient.
type mockGenerativeClient struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	callCount int
}

func (m *mockGenerativeClient) GenerateContent(_ context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	idx := m.callCount
	m.callCount++
	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return nil, errors.New("no more responses configured")
}

// makeResponse creates a genai response with the given text part.
func makeResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: text},
			}}},
		},
	}
}

func TestGeminiClient_Explain_Success(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			makeResponse(`[{"file":"src/app.ts","line":10,"code":"TS2322","explanation":"type mismatch","fix":"change the type"}]`),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	client := NewGeminiClient("fake-key", "test-model", factory)
	result, err := client.Explain(context.Background(), "explain this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result))
	}
	if result[0].File != "src/app.ts" {
		t.Errorf("expected file 'src/app.ts', got %q", result[0].File)
	}
	if result[0].Line != 10 {
		t.Errorf("expected line 10, got %d", result[0].Line)
	}
	if result[0].Fix != "change the type" {
		t.Errorf("expected fix, got %q", result[0].Fix)
	}
}

func TestGeminiClient_Explain_FactoryError(t *testing.T) {
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return nil, errors.New("factory boom")
	}

	client := NewGeminiClient("key", "", factory)
	_, err := client.Explain(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGeminiClient_Explain_RetriesOnTransientError(t *testing.T) {
	mock := &mockGenerativeClient{
		errs: []error{
			errors.New("transient failure"),
			nil,
		},
		responses: []*genai.GenerateContentResponse{
			nil,
			makeResponse(`[{"file":"src/a.ts","line":1,"explanation":"ok"}]`),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	client := NewGeminiClient("key", "m", factory)
	result, err := client.Explain(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result))
	}
	if mock.callCount != 2 {
		t.Errorf("expected 2 attempts, got %d", mock.callCount)
	}
}

func TestGeminiClient_Explain_MalformedJSON(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			makeResponse(`not json`),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	client := NewGeminiClient("key", "m", factory)
	_, err := client.Explain(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestGeminiClient_Explain_EmptyResponse(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			{},
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	client := NewGeminiClient("key", "m", factory)
	_, err := client.Explain(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestExtractText(t *testing.T) {
	if _, err := extractText(nil); err == nil {
		t.Error("expected error for nil response")
	}

	text, err := extractText(makeResponse("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Errorf("expected 'hello', got %q", text)
	}
}
