package llm

import (
	"context"
	"sync"

	"venturelens/ports"
)

// MockModelClient is a scripted model client for testing. Responses are
// returned in order; the last one repeats once the script runs out.
// Safe for concurrent use.
type MockModelClient struct {
	Responses   []string
	Err         error
	Unavailable bool

	mu       sync.Mutex
	Requests []ports.ModelRequest
	calls    int
}

func (m *MockModelClient) Available() bool {
	return !m.Unavailable
}

func (m *MockModelClient) Model() string {
	return "mock-model"
}

func (m *MockModelClient) Generate(ctx context.Context, req ports.ModelRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "{}", nil
	}
	idx := m.calls
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	m.calls++
	return m.Responses[idx], nil
}
