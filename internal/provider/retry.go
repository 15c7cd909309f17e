package provider

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

// RetryAdapter retries transient vendor failures with exponential backoff and jitter.
type RetryAdapter struct {
	domain.ProviderAdapter
	config config.RetryConfig
}

// WithRetry wraps an adapter. A MaxAttempts below 2 returns the adapter unchanged.
func WithRetry(a domain.ProviderAdapter, cfg config.RetryConfig) domain.ProviderAdapter {
	if cfg.MaxAttempts < 2 {
		return a
	}
	return &RetryAdapter{ProviderAdapter: a, config: cfg}
}

func (r *RetryAdapter) GenerateQuiz(ctx context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	var lastErr error
	for attempt := range r.config.MaxAttempts {
		out, err := r.ProviderAdapter.GenerateQuiz(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !shouldRetry(err) || attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		logger.Get().Warn("Retrying quiz generation",
			zap.String("provider", string(r.Type())),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Domain errors (unavailable adapter, bad input) do not change between attempts.
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return false
	}
	var rejected *ErrRejected
	return !errors.As(err, &rejected)
}

func (r *RetryAdapter) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 && wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}
	// ±20% jitter
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
