package provider

import (
	"context"
	"errors"

	"doc-quiz/internal/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicAdapter generates quizzes through the Anthropic Messages API.
// Claude has no JSON mode here, so the cleaner in the parser does the work.
type AnthropicAdapter struct {
	base
	client *anthropic.Client
}

func NewAnthropicAdapter(s Settings) *AnthropicAdapter {
	a := &AnthropicAdapter{base: newBase(domain.ProviderAnthropic, s, s.APIKey != "")}
	if a.available {
		// RetryAdapter owns retries.
		opts := []option.RequestOption{option.WithAPIKey(s.APIKey), option.WithMaxRetries(0)}
		if s.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(s.BaseURL))
		}
		client := anthropic.NewClient(opts...)
		a.client = &client
	}
	return a
}

func (a *AnthropicAdapter) OutputFormat() domain.OutputFormat { return domain.FormatJSON }

func (a *AnthropicAdapter) GenerateQuiz(ctx context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	if err := a.checkAvailable(); err != nil {
		return nil, err
	}
	opts := a.resolve(req.Options)
	prompt := BuildPrompt(req, domain.FormatJSON, a.settings.ContentLimit)

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.model),
		MaxTokens: int64(opts.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: prompt.System}},
		Messages: []anthropic.MessageParam{
			{
				Role:    anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt.User)},
			},
		},
		Temperature: anthropic.Float(opts.temperature),
	})
	if err != nil {
		return nil, mapAnthropicError(err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return &domain.RawOutput{
				Text:   block.Text,
				Format: domain.FormatJSON,
				Model:  string(msg.Model),
			}, nil
		}
	}
	return nil, &ErrUpstream{Err: errors.New("no text content in Anthropic response")}
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.StatusCode, err)
	}
	return &ErrUpstream{Err: err}
}
