package service

import (
	"context"
	"time"

	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizArchive ---
type MockQuizArchive struct {
	mock.Mock
}

func (m *MockQuizArchive) Save(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizArchive) FindByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizArchive) ListRecent(ctx context.Context, limit int) ([]domain.QuizSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizSummary), args.Error(1)
}

func (m *MockQuizArchive) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- MockDocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	args := m.Called(ctx, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Content(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}

// failingCache returns err from every call.
type failingCache struct {
	err error
}

func (f failingCache) Get(context.Context, string) (string, error) { return "", f.err }

func (f failingCache) Set(context.Context, string, string, time.Duration) error { return f.err }

func (f failingCache) Delete(context.Context, string) error { return f.err }

func (f failingCache) Ping(context.Context) error { return f.err }
