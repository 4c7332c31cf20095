package api

import (
	"context"
	"sync"
)

// MockQueryClient is a mock implementation of QueryClientInterface for testing
type MockQueryClient struct {
	// Mock return values. Outcomes are consumed in order; once exhausted
	// (or when empty) Outcome is returned.
	Outcome  Outcome
	Outcomes []Outcome
	// QueryFunc, when set, takes precedence over the canned outcomes
	QueryFunc   func(ctx context.Context, question string) Outcome
	EndpointVal string

	mu          sync.Mutex
	questions   []string
	closeCalled bool
}

// Ensure MockQueryClient implements QueryClientInterface
var _ QueryClientInterface = (*MockQueryClient)(nil)

func (m *MockQueryClient) Query(ctx context.Context, question string) Outcome {
	m.mu.Lock()
	idx := len(m.questions)
	m.questions = append(m.questions, question)
	fn := m.QueryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, question)
	}
	if idx < len(m.Outcomes) {
		return m.Outcomes[idx]
	}
	return m.Outcome
}

func (m *MockQueryClient) Endpoint() string {
	if m.EndpointVal == "" {
		return "http://localhost:5000/query"
	}
	return m.EndpointVal
}

func (m *MockQueryClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalled = true
}

// Questions returns the questions received so far
func (m *MockQueryClient) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questions...)
}

// CloseCalled reports whether Close was called
func (m *MockQueryClient) CloseCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalled
}
