package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted outcome for the MockProvider: either Content
// (with optional Usage) or Err.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves scripted responses in order and records every request
// it sees. The mutex matters: the feedback generator hits one provider from
// many goroutines at once, and the tests for that fan-out do too.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse

	// Calls holds every request in arrival order. Read it only after the
	// calls under test have finished, or via Requests for a safe copy.
	Calls []Request
}

// NewMockProvider scripts a provider with the given outcomes.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// AddResponse appends another scripted outcome.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// Generate pops the next scripted outcome. An exhausted script behaves like
// an outage so a test that under-scripts fails loudly instead of hanging on
// a zero-value response.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID identifies the mock in log output.
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount reports how many Generate calls have landed.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Requests returns a copy of the recorded requests, safe to inspect while
// other goroutines are still calling Generate.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.Calls))
	copy(out, m.Calls)
	return out
}
