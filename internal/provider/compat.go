package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doc-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

// deepSeekContentLimit is lower than the default to fit deepseek-chat's context window.
const deepSeekContentLimit = 12000

// CompatAdapter talks to OpenAI-compatible chat endpoints (DeepSeek, Grok) in JSON mode.
type CompatAdapter struct {
	base
	llm llms.Model
}

// NewDeepSeekAdapter builds the DeepSeek adapter.
func NewDeepSeekAdapter(s Settings) (*CompatAdapter, error) {
	if s.ContentLimit == 0 {
		s.ContentLimit = deepSeekContentLimit
	}
	return newCompatAdapter(domain.ProviderDeepSeek, s)
}

// NewGrokAdapter builds the Grok adapter.
func NewGrokAdapter(s Settings) (*CompatAdapter, error) {
	return newCompatAdapter(domain.ProviderGrok, s)
}

func newCompatAdapter(kind domain.ProviderType, s Settings) (*CompatAdapter, error) {
	a := &CompatAdapter{base: newBase(kind, s, s.APIKey != "")}
	if !a.available {
		return a, nil
	}
	opts := []lcopenai.Option{
		lcopenai.WithToken(s.APIKey),
		lcopenai.WithModel(s.Model),
	}
	if s.BaseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(s.BaseURL))
	}
	llm, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", kind, err)
	}
	a.llm = llm
	return a, nil
}

func (a *CompatAdapter) OutputFormat() domain.OutputFormat { return domain.FormatJSON }

func (a *CompatAdapter) GenerateQuiz(ctx context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	if err := a.checkAvailable(); err != nil {
		return nil, err
	}
	opts := a.resolve(req.Options)
	prompt := BuildPrompt(req, domain.FormatJSON, a.settings.ContentLimit)

	text, err := generateText(ctx, a.llm, prompt,
		llms.WithModel(opts.model),
		llms.WithTemperature(opts.temperature),
		llms.WithMaxTokens(opts.maxTokens),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, err
	}
	return &domain.RawOutput{Text: text, Format: domain.FormatJSON, Model: opts.model}, nil
}

// generateText runs a system+user exchange through a langchaingo model.
func generateText(ctx context.Context, llm llms.Model, prompt Prompt, options ...llms.CallOption) (string, error) {
	resp, err := llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, prompt.System),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt.User),
	}, options...)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &ErrUpstream{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ErrUpstream{Err: errors.New("no choices in response")}
	}
	return stripThinking(resp.Choices[0].Content), nil
}

// stripThinking drops a <think>...</think> block that reasoning models prepend.
func stripThinking(text string) string {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "<think>")
	if start == -1 {
		return text
	}
	end := strings.Index(text, "</think>")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[:start] + text[end+len("</think>"):])
}
