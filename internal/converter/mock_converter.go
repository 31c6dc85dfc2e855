package converter

import (
	"context"
	"sync"
)

// MockResponse is one scripted reply from MockConverter.
type MockResponse struct {
	Detail Detail
	Err    error
}

// MockConverter is a test double for Converter. Responses are returned in
// the order they were given; once the queue is empty the last response
// repeats. With nothing queued it returns a zero Detail and no error.
//
// NOTE: This file is used by tests in internal/session.
type MockConverter struct {
	mu        sync.Mutex
	responses []MockResponse
	questions []string
	last      MockResponse
}

// NewMockConverter creates a mock converter with the given queued responses.
func NewMockConverter(responses ...MockResponse) *MockConverter {
	return &MockConverter{responses: responses}
}

// Convert records the question and returns the next queued response.
func (m *MockConverter) Convert(ctx context.Context, question string) (Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.questions = append(m.questions, question)
	if len(m.responses) > 0 {
		m.last = m.responses[0]
		m.responses = m.responses[1:]
	}
	return m.last.Detail, m.last.Err
}

// Questions returns every question passed to Convert.
func (m *MockConverter) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.questions))
	copy(out, m.questions)
	return out
}

// Ensure MockConverter implements Converter at compile time.
var _ Converter = (*MockConverter)(nil)
