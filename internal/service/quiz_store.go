package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"doc-quiz/internal/cache"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizStore keeps generated quizzes for later retrieval, export and scoring.
type QuizStore interface {
	Save(ctx context.Context, quiz *domain.Quiz) error
	Get(ctx context.Context, quizID string) (*domain.Quiz, error)
	ListRecent(ctx context.Context, limit int) ([]domain.QuizSummary, error)
	Delete(ctx context.Context, quizID string) error
}

// quizStoreImpl writes through to the cache and, when configured, the SQL archive.
// Reads that miss the cache fall back to the archive and re-warm the cache.
type quizStoreImpl struct {
	cache   domain.Cache
	archive domain.QuizArchive
	ttl     time.Duration
}

// NewQuizStore requires a cache; archive may be nil.
func NewQuizStore(c domain.Cache, archive domain.QuizArchive, ttl time.Duration) QuizStore {
	if archive == nil {
		logger.Get().Info("Quiz archive disabled; quizzes expire with the cache", zap.Duration("ttl", ttl))
	}
	return &quizStoreImpl{cache: c, archive: archive, ttl: ttl}
}

func (s *quizStoreImpl) Save(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return domain.NewInvalidInputError("cannot store nil quiz")
	}

	key := cache.QuizKey(quiz.ID)
	data, err := json.Marshal(quiz)
	if err != nil {
		return domain.NewInternalError("failed to marshal quiz for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache quiz", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError("failed to store quiz", err)
	}

	if s.archive != nil {
		// The cached copy already serves reads, so an archive failure only costs durability.
		if err := s.archive.Save(ctx, quiz); err != nil {
			logger.Get().Error("Failed to archive quiz", zap.Error(err), zap.String("quizID", quiz.ID))
		}
	}
	logger.Get().Debug("Stored quiz", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *quizStoreImpl) Get(ctx context.Context, quizID string) (*domain.Quiz, error) {
	key := cache.QuizKey(quizID)
	data, err := s.cache.Get(ctx, key)
	switch {
	case err == nil && data != "":
		var quiz domain.Quiz
		if err := json.Unmarshal([]byte(data), &quiz); err != nil {
			logger.Get().Error("Failed to unmarshal cached quiz", zap.Error(err), zap.String("key", key))
			return nil, domain.NewInternalError("failed to read stored quiz", err)
		}
		return &quiz, nil
	case err == nil, errors.Is(err, domain.ErrCacheMiss):
		logger.Get().Debug("Quiz cache miss", zap.String("key", key))
	default:
		logger.Get().Warn("Quiz cache read failed, trying archive", zap.Error(err), zap.String("key", key))
	}

	if s.archive == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	quiz, err := s.archive.FindByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read archived quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	if data, err := json.Marshal(quiz); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			logger.Get().Warn("Failed to re-cache archived quiz", zap.Error(err), zap.String("key", key))
		}
	}
	return quiz, nil
}

func (s *quizStoreImpl) ListRecent(ctx context.Context, limit int) ([]domain.QuizSummary, error) {
	if s.archive == nil {
		return []domain.QuizSummary{}, nil
	}
	summaries, err := s.archive.ListRecent(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list archived quizzes", err)
	}
	return summaries, nil
}

// Delete evicts the quiz from the cache and the archive. Missing in both is QuizNotFound.
func (s *quizStoreImpl) Delete(ctx context.Context, quizID string) error {
	key := cache.QuizKey(quizID)
	_, getErr := s.cache.Get(ctx, key)
	cached := getErr == nil
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Error("Failed to evict quiz from cache", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError("failed to delete quiz", err)
	}

	archived := false
	if s.archive != nil {
		var err error
		archived, err = s.archive.Delete(ctx, quizID)
		if err != nil {
			return domain.NewInternalError("failed to delete archived quiz", err)
		}
	}

	if !cached && !archived {
		return domain.NewQuizNotFoundError(quizID)
	}
	logger.Get().Info("Deleted quiz", zap.String("quizID", quizID))
	return nil
}
