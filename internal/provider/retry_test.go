package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() config.RetryConfig {
	return config.RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockAdapter(domain.ProviderOpenAI, true,
		MockResponse{Err: &ErrUpstream{Err: errors.New("down")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		MockResponse{Text: "{}"},
	)
	a := WithRetry(mock, retryConfig())

	out, err := a.GenerateQuiz(context.Background(), domain.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "{}", out.Text)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockAdapter(domain.ProviderOpenAI, true)
	a := WithRetry(mock, retryConfig())

	_, err := a.GenerateQuiz(context.Background(), domain.GenerateRequest{})
	var upstream *ErrUpstream
	assert.True(t, errors.As(err, &upstream))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_NonTransientErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rejected", &ErrRejected{StatusCode: 400, Err: errors.New("bad request")}},
		{"domain error", domain.NewProviderUnavailableError(domain.ProviderOpenAI)},
		{"deadline", context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockAdapter(domain.ProviderOpenAI, true, MockResponse{Err: tt.err}, MockResponse{Text: "{}"})
			a := WithRetry(mock, retryConfig())

			_, err := a.GenerateQuiz(context.Background(), domain.GenerateRequest{})
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestRetry_ContextCancelledDuringWait(t *testing.T) {
	mock := NewMockAdapter(domain.ProviderOpenAI, true,
		MockResponse{Err: &ErrUpstream{Err: errors.New("down")}},
	)
	cfg := retryConfig()
	cfg.InitialWait = time.Second
	cfg.MaxWait = time.Second
	a := WithRetry(mock, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := a.GenerateQuiz(ctx, domain.GenerateRequest{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_DelegatesCapabilities(t *testing.T) {
	mock := NewMockAdapter(domain.ProviderOllama, false)
	mock.Format = domain.FormatMarkdown
	a := WithRetry(mock, retryConfig())

	assert.Equal(t, domain.ProviderOllama, a.Type())
	assert.False(t, a.IsAvailable())
	assert.Equal(t, domain.FormatMarkdown, a.OutputFormat())
	assert.Equal(t, "mock", a.Model())
}

func TestWithRetry_SingleAttemptIsUnwrapped(t *testing.T) {
	mock := NewMockAdapter(domain.ProviderOpenAI, true)
	assert.Same(t, mock, WithRetry(mock, config.RetryConfig{MaxAttempts: 1}))
}

func TestRetry_BackoffHonorsRetryAfter(t *testing.T) {
	r := &RetryAdapter{config: retryConfig()}
	assert.Equal(t, 5*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: 5 * time.Second}))

	wait := r.backoff(10, &ErrUpstream{})
	assert.LessOrEqual(t, wait, 12*time.Millisecond)
	assert.GreaterOrEqual(t, wait, 8*time.Millisecond)
}
