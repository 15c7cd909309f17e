package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doc-quiz/internal/adapter"
	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const providerJSON = `Here is your quiz:
` + "```json" + `
{
  "questions": [
    {"id": "1", "question": "What is 2+2?", "options": ["3", "4", "5", "6"], "correctAnswer": "4", "explanation": "Basic math", "difficulty": "easy"},
    {"id": "2", "question": "Capital of France?", "options": ["Berlin", "Madrid", "Paris", "Rome"], "correctAnswer": "Paris", "difficulty": "intermediate"}
  ],
  "metadata": {"title": "General", "description": "d", "difficultyDistribution": {"easy": 50, "medium": 50, "hard": 0}, "numberOfQuestions": 2}
}
` + "```"

const providerMarkdown = "| Question | Option A | Option B | Option C | Option D | Correct Answer | Explanation | Difficulty |\n" +
	"|---|---|---|---|---|---|---|---|\n" +
	"| What is 2+2? | 3 | 4 | 5 | 6 | 4 | Basic math | easy |\n" +
	"| Bad row? | a | b | c | d | z | nope | easy |\n"

func quizConfig() config.QuizConfig {
	return config.QuizConfig{CacheTTL: time.Hour, GenerateTimeout: time.Second, DefaultCount: 5, MaxCount: 20}
}

func newQuizService(t *testing.T, adapters ...domain.ProviderAdapter) (QuizService, *MockDocumentService) {
	t.Helper()
	docs := new(MockDocumentService)
	store := NewQuizStore(adapter.NewMemoryCache(), nil, time.Hour)
	return NewQuizService(provider.NewRegistry(adapters...), store, docs, quizConfig()), docs
}

func TestQuizService_GenerateJSON(t *testing.T) {
	openai := provider.NewMockAdapter(domain.ProviderOpenAI, true, provider.MockResponse{Text: providerJSON})
	svc, _ := newQuizService(t, openai)
	ctx := context.Background()

	resp, err := svc.Generate(ctx, &dto.GenerateQuizRequest{DocumentText: "  Arithmetic and geography.  ", NumberOfQuestions: 2})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "General", resp.Title)
	assert.Equal(t, domain.ProviderOpenAI, resp.Provider)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, domain.DifficultyMedium, resp.Questions[1].Difficulty)
	assert.Equal(t, "general", resp.Questions[1].Category)

	require.Len(t, openai.Calls, 1)
	call := openai.Calls[0]
	assert.Equal(t, "Arithmetic and geography.", call.Content)
	assert.Equal(t, 2, call.NumberOfQuestions)
	assert.Equal(t, domain.DifficultyMedium, call.Difficulty.Level)

	stored, err := svc.GetQuiz(ctx, resp.QuizID)
	require.NoError(t, err)
	assert.Equal(t, resp.Questions, stored.Questions)
	assert.Equal(t, domain.DifficultyDistribution{Medium: 100}, stored.Metadata.Difficulty)
	assert.Equal(t, domain.FormatJSON, stored.Metadata.SourceFormat)
}

func TestQuizService_GenerateMarkdownDropsBadRows(t *testing.T) {
	ollama := provider.NewMockAdapter(domain.ProviderOllama, true, provider.MockResponse{Text: providerMarkdown})
	ollama.Format = domain.FormatMarkdown
	svc, _ := newQuizService(t, ollama)

	resp, err := svc.Generate(context.Background(), &dto.GenerateQuizRequest{DocumentText: "math", Provider: "Ollama"})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "4", resp.Questions[0].CorrectAnswer)
}

func TestQuizService_GenerateCountClampingAndDistribution(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"default", 0, 5},
		{"within range", 7, 7},
		{"above max", 50, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdapter := provider.NewMockAdapter(domain.ProviderOpenAI, true, provider.MockResponse{Text: providerJSON})
			svc, _ := newQuizService(t, mockAdapter)

			_, err := svc.Generate(context.Background(), &dto.GenerateQuizRequest{
				DocumentText:           "text",
				NumberOfQuestions:      tt.count,
				DifficultyDistribution: &domain.DifficultyDistribution{Easy: 20, Medium: 30, Hard: 50},
			})
			require.NoError(t, err)
			require.Len(t, mockAdapter.Calls, 1)
			assert.Equal(t, tt.want, mockAdapter.Calls[0].NumberOfQuestions)
			assert.Equal(t, domain.DifficultyDistribution{Easy: 20, Medium: 30, Hard: 50}, mockAdapter.Calls[0].Difficulty.Resolve())
		})
	}
}

func TestQuizService_GenerateFromDocumentID(t *testing.T) {
	mockAdapter := provider.NewMockAdapter(domain.ProviderOpenAI, true, provider.MockResponse{Text: providerJSON})
	svc, docs := newQuizService(t, mockAdapter)
	docs.On("Content", mock.Anything, "doc-1").Return("uploaded text", nil)

	resp, err := svc.Generate(context.Background(), &dto.GenerateQuizRequest{DocumentID: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, "uploaded text", mockAdapter.Calls[0].Content)

	stored, err := svc.GetQuiz(context.Background(), resp.QuizID)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", stored.Metadata.DocumentID)
	docs.AssertExpectations(t)
}

func TestQuizService_GenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		adapters []domain.ProviderAdapter
		req      dto.GenerateQuizRequest
		code     domain.ErrorCode
	}{
		{
			name: "no content",
			req:  dto.GenerateQuizRequest{},
			code: domain.CodeInvalidInput,
		},
		{
			name: "bad distribution",
			req: dto.GenerateQuizRequest{DocumentText: "t",
				DifficultyDistribution: &domain.DifficultyDistribution{Easy: 90, Hard: 90}},
			code: domain.CodeInvalidInput,
		},
		{
			name: "unknown difficulty label",
			req:  dto.GenerateQuizRequest{DocumentText: "t", Difficulty: "nightmare"},
			code: domain.CodeInvalidInput,
		},
		{
			name:     "requested provider unavailable",
			adapters: []domain.ProviderAdapter{provider.NewMockAdapter(domain.ProviderOpenAI, true), provider.NewMockAdapter(domain.ProviderAnthropic, false)},
			req:      dto.GenerateQuizRequest{DocumentText: "t", Provider: "anthropic"},
			code:     domain.CodeProviderUnavailable,
		},
		{
			name:     "unsupported provider",
			adapters: []domain.ProviderAdapter{provider.NewMockAdapter(domain.ProviderOpenAI, true)},
			req:      dto.GenerateQuizRequest{DocumentText: "t", Provider: "mistral"},
			code:     domain.CodeUnsupportedProvider,
		},
		{
			name:     "none available",
			adapters: []domain.ProviderAdapter{provider.NewMockAdapter(domain.ProviderOpenAI, false)},
			req:      dto.GenerateQuizRequest{DocumentText: "t"},
			code:     domain.CodeNoProviderAvailable,
		},
		{
			name: "vendor failure",
			adapters: []domain.ProviderAdapter{provider.NewMockAdapter(domain.ProviderOpenAI, true,
				provider.MockResponse{Err: &provider.ErrUpstream{Err: errors.New("503")}})},
			req:  dto.GenerateQuizRequest{DocumentText: "t"},
			code: domain.CodeLLMServiceError,
		},
		{
			name: "malformed output",
			adapters: []domain.ProviderAdapter{provider.NewMockAdapter(domain.ProviderOpenAI, true,
				provider.MockResponse{Text: "Sorry, I can't do that."})},
			req:  dto.GenerateQuizRequest{DocumentText: "t"},
			code: domain.CodeMalformedResponse,
		},
		{
			name: "invalid shape",
			adapters: []domain.ProviderAdapter{provider.NewMockAdapter(domain.ProviderOpenAI, true,
				provider.MockResponse{Text: `{"questions":[{"question":"Q?","options":["a","b"],"correctAnswer":"a"}],"metadata":{}}`})},
			req:  dto.GenerateQuizRequest{DocumentText: "t"},
			code: domain.CodeInvalidShape,
		},
		{
			name: "no usable questions",
			adapters: []domain.ProviderAdapter{provider.NewMockAdapter(domain.ProviderOpenAI, true,
				provider.MockResponse{Text: `{"questions":[],"metadata":{}}`})},
			req:  dto.GenerateQuizRequest{DocumentText: "t"},
			code: domain.CodeParse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newQuizService(t, tt.adapters...)
			resp, err := svc.Generate(context.Background(), &tt.req)
			assert.Nil(t, resp)
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, tt.code), "got %v", err)
		})
	}
}

// blockingAdapter holds GenerateQuiz until release is closed.
type blockingAdapter struct {
	*provider.MockAdapter
	release chan struct{}
}

func (b *blockingAdapter) GenerateQuiz(ctx context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	<-b.release
	return b.MockAdapter.GenerateQuiz(ctx, req)
}

func TestQuizService_GenerateCollapsesIdenticalRequests(t *testing.T) {
	inner := provider.NewMockAdapter(domain.ProviderOpenAI, true, provider.MockResponse{Text: providerJSON})
	blocking := &blockingAdapter{MockAdapter: inner, release: make(chan struct{})}
	svc, _ := newQuizService(t, blocking)

	const callers = 3
	var wg sync.WaitGroup
	ids := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.Generate(context.Background(), &dto.GenerateQuizRequest{DocumentText: "same"})
			errs[i] = err
			if resp != nil {
				ids[i] = resp.QuizID
			}
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(blocking.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, 1, inner.CallCount())
}

func TestQuizService_GenerateReturnsWhenCallerCancels(t *testing.T) {
	inner := provider.NewMockAdapter(domain.ProviderOpenAI, true, provider.MockResponse{Text: providerJSON})
	blocking := &blockingAdapter{MockAdapter: inner, release: make(chan struct{})}
	svc, _ := newQuizService(t, blocking)
	defer close(blocking.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	resp, err := svc.Generate(ctx, &dto.GenerateQuizRequest{DocumentText: "slow"})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestKey_IncludesDocumentID(t *testing.T) {
	req := domain.GenerateRequest{Content: "same", NumberOfQuestions: 5}

	assert.Equal(t, requestKey(domain.ProviderOpenAI, req, "doc-1"), requestKey(domain.ProviderOpenAI, req, "doc-1"))
	assert.NotEqual(t, requestKey(domain.ProviderOpenAI, req, "doc-1"), requestKey(domain.ProviderOpenAI, req, "doc-2"))
	assert.NotEqual(t, requestKey(domain.ProviderOpenAI, req, ""), requestKey(domain.ProviderGemini, req, ""))
}

func TestQuizService_ExportAndScore(t *testing.T) {
	mockAdapter := provider.NewMockAdapter(domain.ProviderOpenAI, true, provider.MockResponse{Text: providerJSON})
	svc, _ := newQuizService(t, mockAdapter)
	ctx := context.Background()

	resp, err := svc.Generate(ctx, &dto.GenerateQuizRequest{DocumentText: "t"})
	require.NoError(t, err)

	doc, err := svc.Export(ctx, resp.QuizID, "text")
	require.NoError(t, err)
	assert.Contains(t, string(doc.Data), "Question 1: What is 2+2?")

	_, err = svc.Export(ctx, resp.QuizID, "pdf")
	assert.True(t, domain.HasCode(err, domain.CodeUnsupportedFormat))

	_, err = svc.Export(ctx, "missing", "json")
	assert.True(t, domain.HasCode(err, domain.CodeQuizNotFound))

	score, err := svc.Score(ctx, resp.QuizID, map[string]string{"1": "4", "2": "Rome"})
	require.NoError(t, err)
	assert.Equal(t, 2, score.Total)
	assert.Equal(t, 1, score.Correct)
	assert.InDelta(t, 50.0, score.Percentage, 0.001)
}

func TestQuizService_AIStatus(t *testing.T) {
	svc, _ := newQuizService(t,
		provider.NewMockAdapter(domain.ProviderOpenAI, false),
		provider.NewMockAdapter(domain.ProviderGemini, true),
	)

	status := svc.AIStatus()
	assert.True(t, status.Available)
	require.Len(t, status.Providers, 2)
	assert.Equal(t, domain.ProviderOpenAI, status.Providers[0].Type)
	assert.False(t, status.Providers[0].Available)

	empty, _ := newQuizService(t)
	assert.False(t, empty.AIStatus().Available)
	assert.NotNil(t, empty.AIStatus().Providers)
}
