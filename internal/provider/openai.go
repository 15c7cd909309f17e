package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/parser"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter generates quizzes through the OpenAI chat completions API using
// a strict JSON schema response format.
type OpenAIAdapter struct {
	base
	client *openai.Client
}

// NewOpenAIAdapter builds the adapter. Without an API key it is constructed unavailable.
func NewOpenAIAdapter(s Settings) *OpenAIAdapter {
	a := &OpenAIAdapter{base: newBase(domain.ProviderOpenAI, s, s.APIKey != "")}
	if a.available {
		config := openai.DefaultConfig(s.APIKey)
		if s.BaseURL != "" {
			config.BaseURL = s.BaseURL
		}
		a.client = openai.NewClientWithConfig(config)
	}
	return a
}

func (a *OpenAIAdapter) OutputFormat() domain.OutputFormat { return domain.FormatJSON }

func (a *OpenAIAdapter) GenerateQuiz(ctx context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	if err := a.checkAvailable(); err != nil {
		return nil, err
	}
	opts := a.resolve(req.Options)
	prompt := BuildPrompt(req, domain.FormatJSON, a.settings.ContentLimit)

	schemaBytes, err := json.Marshal(parser.QuizResponseSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: opts.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		MaxCompletionTokens: opts.maxTokens,
		Temperature:         float32(opts.temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   parser.QuizSchemaName,
				Schema: json.RawMessage(schemaBytes),
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrUpstream{Err: errors.New("no choices in OpenAI response")}
	}

	model := resp.Model
	if model == "" {
		model = opts.model
	}
	return &domain.RawOutput{
		Text:   resp.Choices[0].Message.Content,
		Format: domain.FormatJSON,
		Model:  model,
	}, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, err)
	}
	return &ErrUpstream{Err: err}
}
