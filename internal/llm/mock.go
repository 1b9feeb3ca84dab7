package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned responses in FIFO order and records every
// request. With an empty queue it answers with Fallback when set, and
// with ErrProviderUnavailable otherwise.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request

	// Fallback, when non-nil, serves requests once the queue is drained.
	Fallback func(Request) (json.RawMessage, error)
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	next, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: stopEnd,
	}, nil
}

// next records req and pops the queue. Fallback runs without the lock
// held so it may block.
func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	if len(m.responses) > 0 {
		resp := m.responses[0]
		m.responses = m.responses[1:]
		m.mu.Unlock()
		return resp, true
	}
	fallback := m.Fallback
	m.mu.Unlock()

	if fallback == nil {
		return MockResponse{}, false
	}
	var resp MockResponse
	resp.Content, resp.Err = fallback(req)
	return resp, true
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another canned response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
