package provider

import (
	"context"
	"sync"

	"doc-quiz/internal/domain"
)

// MockResponse is a canned reply for MockAdapter.
type MockResponse struct {
	Text string
	Err  error
}

// MockAdapter is a deterministic adapter for tests and offline runs. It
// returns canned responses in FIFO order and records every request.
type MockAdapter struct {
	Kind      domain.ProviderType
	Available bool
	Format    domain.OutputFormat

	mu        sync.Mutex
	responses []MockResponse
	Calls     []domain.GenerateRequest
}

func NewMockAdapter(kind domain.ProviderType, available bool, responses ...MockResponse) *MockAdapter {
	return &MockAdapter{Kind: kind, Available: available, Format: domain.FormatJSON, responses: responses}
}

func (m *MockAdapter) Type() domain.ProviderType { return m.Kind }

func (m *MockAdapter) IsAvailable() bool { return m.Available }

func (m *MockAdapter) OutputFormat() domain.OutputFormat { return m.Format }

func (m *MockAdapter) Model() string { return "mock" }

// GenerateQuiz returns ErrUpstream once the queue is empty.
func (m *MockAdapter) GenerateQuiz(_ context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrUpstream{}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &domain.RawOutput{Text: resp.Text, Format: m.Format, Model: "mock"}, nil
}

func (m *MockAdapter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
