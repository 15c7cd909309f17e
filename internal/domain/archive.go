package domain

import (
	"context"
	"time"
)

// QuizSummary is a listing row for archived quizzes.
type QuizSummary struct {
	ID            string       `json:"id" db:"id"`
	Title         string       `json:"title" db:"title"`
	Provider      ProviderType `json:"provider" db:"provider"`
	QuestionCount int          `json:"questionCount" db:"question_count"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
}

// QuizArchive persists generated quizzes beyond the cache TTL.
type QuizArchive interface {
	Save(ctx context.Context, quiz *Quiz) error
	FindByID(ctx context.Context, id string) (*Quiz, error)
	ListRecent(ctx context.Context, limit int) ([]QuizSummary, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
