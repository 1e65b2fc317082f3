package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSONResponse marshals v into a canned reply.
func JSONResponse(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: b}
}

// MockProvider replays canned replies. A request whose purpose has its own
// queue (see OnPurpose) drains that queue; every other request drains the
// shared queue in FIFO order. With nothing queued Generate fails with
// ErrProviderUnavailable. Concurrent graders stay deterministic as long as
// each purpose gets its own queue.
type MockProvider struct {
	mu        sync.Mutex
	shared    []MockResponse
	byPurpose map[string][]MockResponse

	// Calls records every request in arrival order.
	Calls    []Request
	purposes []string
}

// NewMockProvider creates a MockProvider with responses on the shared queue.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{shared: responses, byPurpose: map[string][]MockResponse{}}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.purposes = append(m.purposes, purpose)

	var resp MockResponse
	switch {
	case len(m.byPurpose[purpose]) > 0:
		resp = m.byPurpose[purpose][0]
		m.byPurpose[purpose] = m.byPurpose[purpose][1:]
	case len(m.shared) > 0:
		resp = m.shared[0]
		m.shared = m.shared[1:]
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends to the shared queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shared = append(m.shared, resp)
}

// OnPurpose queues responses for requests labelled purpose.
func (m *MockProvider) OnPurpose(purpose string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPurpose[purpose] = append(m.byPurpose[purpose], responses...)
}

// CallCount returns the number of Generate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CallsFor returns the requests labelled purpose, in arrival order.
func (m *MockProvider) CallsFor(purpose string) []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Request
	for i, p := range m.purposes {
		if p == purpose {
			out = append(out, m.Calls[i])
		}
	}
	return out
}
