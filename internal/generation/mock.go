package generation

import (
	"context"
	"sync"
)

// MockResponse is a canned reply for MockGenerator.
type MockResponse struct {
	Text string
	Err  error
}

// MockGenerator returns canned responses in FIFO order and records every prompt.
// With an empty queue it returns ErrUnavailable.
type MockGenerator struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []string
}

// NewMockGenerator creates a MockGenerator with the given canned responses.
func NewMockGenerator(responses ...MockResponse) *MockGenerator {
	return &MockGenerator{responses: responses}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, _ Options) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(m.responses) == 0 {
		return "", ErrUnavailable
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Text, resp.Err
}

func (m *MockGenerator) Name() string { return "mock" }

// AddResponse appends a canned response to the queue.
func (m *MockGenerator) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Disabled never generates; the pipeline always falls back.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, Options) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Name() string { return "none" }
