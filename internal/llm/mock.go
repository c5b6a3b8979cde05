package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockSpeechResponse is a canned speech response for the MockProvider.
type MockSpeechResponse struct {
	AudioBase64 string
	MIMEType    string
	Err         error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu          sync.Mutex
	responses   []MockResponse
	speech      []MockSpeechResponse
	Calls       []Request
	SpeechCalls []SpeechRequest
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

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

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// Synthesize returns the next canned speech response or ErrNoAudio if the
// queue is empty.
func (m *MockProvider) Synthesize(_ context.Context, req SpeechRequest) (*SpeechResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SpeechCalls = append(m.SpeechCalls, req)

	if len(m.speech) == 0 {
		return nil, &ErrNoAudio{Model: "mock"}
	}

	resp := m.speech[0]
	m.speech = m.speech[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	mime := resp.MIMEType
	if mime == "" {
		mime = "audio/L16;rate=24000"
	}

	return &SpeechResponse{
		AudioBase64: resp.AudioBase64,
		MIMEType:    mime,
		Model:       "mock",
	}, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddSpeechResponse appends a canned speech response to the queue.
func (m *MockProvider) AddSpeechResponse(resp MockSpeechResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speech = append(m.speech, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
