// Package llmtest provides a scriptable llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Call records one request made to a MockClient.
type Call struct {
	Method string
	Prompt string
	File   *llm.FilePart
	Tier   llm.ModelTier
}

// MockClient implements llm.Client. Unset funcs return an empty response.
type MockClient struct {
	GenerateContentFunc      func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc         func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFromFileFunc func(ctx context.Context, prompt string, file llm.FilePart, tier llm.ModelTier) (string, error)

	mu    sync.Mutex
	calls []Call
}

func (m *MockClient) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// Calls returns the requests made so far.
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

func (m *MockClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(Call{Method: "GenerateContent", Prompt: prompt, Tier: tier})
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(Call{Method: "GenerateJSON", Prompt: prompt, Tier: tier})
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockClient) GenerateJSONFromFile(ctx context.Context, prompt string, file llm.FilePart, tier llm.ModelTier) (string, error) {
	f := file
	m.record(Call{Method: "GenerateJSONFromFile", Prompt: prompt, File: &f, Tier: tier})
	if m.GenerateJSONFromFileFunc != nil {
		return m.GenerateJSONFromFileFunc(ctx, prompt, file, tier)
	}
	return "{}", nil
}

func (m *MockClient) GetModel(llm.ModelTier) string {
	return "mock-model"
}

func (m *MockClient) Close() error {
	return nil
}

var _ llm.Client = (*MockClient)(nil)
