package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records requests.
// Once the script runs out it reports the provider as unavailable, which
// makes the exercise generator fall back to local generation.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Request
}

// NewMockProvider returns a MockProvider scripted with replies.
func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	next := m.replies[0]
	m.replies = m.replies[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      ProviderMock,
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return ProviderMock }

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
