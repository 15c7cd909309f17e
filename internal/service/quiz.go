package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/export"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/parser"
	"doc-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProviderSelector picks the adapter for a request. *provider.Registry implements it.
type ProviderSelector interface {
	SelectOrFirst(requested domain.ProviderType) (domain.ProviderAdapter, error)
	Adapters() []domain.ProviderAdapter
}

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error)
	Export(ctx context.Context, quizID, format string) (*export.Document, error)
	Score(ctx context.Context, quizID string, answers map[string]string) (*domain.ScoreResult, error)
	ListRecent(ctx context.Context, limit int) ([]domain.QuizSummary, error)
	Delete(ctx context.Context, quizID string) error
	AIStatus() *dto.AIStatusResponse
}

type quizService struct {
	providers ProviderSelector
	store     QuizStore
	documents DocumentService
	cfg       config.QuizConfig
	group     singleflight.Group
	now       func() time.Time
}

func NewQuizService(providers ProviderSelector, store QuizStore, documents DocumentService, cfg config.QuizConfig) QuizService {
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 5
	}
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 20
	}
	return &quizService{
		providers: providers,
		store:     store,
		documents: documents,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Generate selects a provider, calls it, normalizes its output and stores the quiz.
// Identical concurrent requests share one provider call.
func (s *quizService) Generate(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	content, err := s.resolveContent(ctx, req)
	if err != nil {
		return nil, err
	}

	difficulty, err := difficultySpec(req)
	if err != nil {
		return nil, err
	}

	adapter, err := s.providers.SelectOrFirst(domain.ParseProviderType(req.Provider))
	if err != nil {
		return nil, err
	}

	genReq := domain.GenerateRequest{
		Content:                content,
		NumberOfQuestions:      s.clampCount(req.NumberOfQuestions),
		Difficulty:             difficulty,
		AdditionalInstructions: strings.TrimSpace(req.AdditionalInstructions),
		Options: domain.GenerateOptions{
			Model:       req.Model,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		},
	}

	ch := s.group.DoChan(requestKey(adapter.Type(), genReq, req.DocumentID), func() (interface{}, error) {
		return s.generate(ctx, adapter, genReq, req.DocumentID)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		logger.Get().Debug("Shared in-flight quiz generation", zap.String("provider", string(adapter.Type())))
	}

	quiz := res.Val.(*domain.Quiz)
	return &dto.GenerateQuizResponse{
		Success:   true,
		QuizID:    quiz.ID,
		Title:     quiz.Metadata.Title,
		Questions: quiz.Questions,
		Provider:  quiz.Metadata.Provider,
		Model:     quiz.Metadata.Model,
	}, nil
}

func (s *quizService) generate(ctx context.Context, adapter domain.ProviderAdapter, req domain.GenerateRequest, documentID string) (*domain.Quiz, error) {
	// Shared callers must not be cancelled by whichever request started the call.
	callCtx := context.WithoutCancel(ctx)
	if s.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, s.cfg.GenerateTimeout)
		defer cancel()
	}

	start := s.now()
	out, err := adapter.GenerateQuiz(callCtx, req)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		logger.Get().Error("Quiz generation failed",
			zap.String("provider", string(adapter.Type())),
			zap.Error(err))
		return nil, domain.NewLLMServiceError(adapter.Type(), err)
	}

	result, err := parser.Parse(out.Text, out.Format)
	if err != nil {
		logger.Get().Warn("Provider output rejected",
			zap.String("provider", string(adapter.Type())),
			zap.String("format", string(out.Format)),
			zap.Error(err))
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, domain.NewParseError("provider returned no usable questions")
	}

	model := out.Model
	if model == "" {
		model = adapter.Model()
	}
	quiz := &domain.Quiz{
		ID:        util.NewULID(),
		Questions: result.Questions,
		Metadata: domain.QuizMetadata{
			Title:        result.Title,
			DocumentID:   documentID,
			Provider:     adapter.Type(),
			Model:        model,
			Difficulty:   req.Difficulty.Resolve(),
			SourceFormat: out.Format,
		},
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(callCtx, quiz); err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz generated",
		zap.String("quizID", quiz.ID),
		zap.String("provider", string(adapter.Type())),
		zap.String("model", model),
		zap.Int("requested", req.NumberOfQuestions),
		zap.Int("questions", len(quiz.Questions)),
		zap.Duration("elapsed", s.now().Sub(start)))
	return quiz, nil
}

func (s *quizService) resolveContent(ctx context.Context, req *dto.GenerateQuizRequest) (string, error) {
	if text := strings.TrimSpace(req.DocumentText); text != "" {
		return text, nil
	}
	if req.DocumentID != "" {
		return s.documents.Content(ctx, req.DocumentID)
	}
	return "", domain.NewInvalidInputError("document text is required")
}

func (s *quizService) clampCount(n int) int {
	switch {
	case n <= 0:
		return s.cfg.DefaultCount
	case n > s.cfg.MaxCount:
		return s.cfg.MaxCount
	}
	return n
}

// difficultySpec prefers an explicit distribution over the legacy single label.
func difficultySpec(req *dto.GenerateQuizRequest) (domain.DifficultySpec, error) {
	if d := req.DifficultyDistribution; d != nil {
		if err := d.Validate(); err != nil {
			return domain.DifficultySpec{}, err
		}
		dist := *d
		return domain.DifficultySpec{Distribution: &dist}, nil
	}
	if strings.TrimSpace(req.Difficulty) == "" {
		return domain.DifficultySpec{Level: domain.DifficultyMedium}, nil
	}
	level, ok := domain.ParseDifficulty(req.Difficulty)
	if !ok {
		return domain.DifficultySpec{}, domain.NewInvalidInputError("difficulty must be easy, medium or hard")
	}
	return domain.DifficultySpec{Level: level}, nil
}

func requestKey(provider domain.ProviderType, req domain.GenerateRequest, documentID string) string {
	data, _ := json.Marshal(struct {
		Provider   domain.ProviderType
		Request    domain.GenerateRequest
		DocumentID string
	}{provider, req, documentID})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	return s.store.Get(ctx, quizID)
}

func (s *quizService) Export(ctx context.Context, quizID, format string) (*export.Document, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	quiz, err := s.store.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	doc, err := export.Render(quiz, f)
	if err != nil {
		return nil, domain.NewInternalError("failed to render quiz export", err)
	}
	return doc, nil
}

func (s *quizService) Score(ctx context.Context, quizID string, answers map[string]string) (*domain.ScoreResult, error) {
	quiz, err := s.store.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	result := quiz.Score(answers)
	return &result, nil
}

func (s *quizService) ListRecent(ctx context.Context, limit int) ([]domain.QuizSummary, error) {
	return s.store.ListRecent(ctx, limit)
}

func (s *quizService) Delete(ctx context.Context, quizID string) error {
	return s.store.Delete(ctx, quizID)
}

func (s *quizService) AIStatus() *dto.AIStatusResponse {
	resp := &dto.AIStatusResponse{Providers: []dto.ProviderStatus{}}
	for _, a := range s.providers.Adapters() {
		available := a.IsAvailable()
		resp.Available = resp.Available || available
		resp.Providers = append(resp.Providers, dto.ProviderStatus{
			Type:         a.Type(),
			Available:    available,
			Model:        a.Model(),
			OutputFormat: a.OutputFormat(),
		})
	}
	return resp
}
