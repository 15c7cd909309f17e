package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"doc-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaAdapter runs a local model. Small local models follow a markdown table
// far more reliably than a JSON schema, so this adapter emits markdown.
type OllamaAdapter struct {
	base
	llm llms.Model
}

// NewOllamaAdapter is available when a server URL is configured.
func NewOllamaAdapter(s Settings, timeout time.Duration) (*OllamaAdapter, error) {
	a := &OllamaAdapter{base: newBase(domain.ProviderOllama, s, s.BaseURL != "")}
	if !a.available {
		return a, nil
	}
	httpClient := &http.Client{Timeout: timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(s.BaseURL),
		ollama.WithModel(s.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	a.llm = llm
	return a, nil
}

func (a *OllamaAdapter) OutputFormat() domain.OutputFormat { return domain.FormatMarkdown }

func (a *OllamaAdapter) GenerateQuiz(ctx context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	if err := a.checkAvailable(); err != nil {
		return nil, err
	}
	opts := a.resolve(req.Options)
	prompt := BuildPrompt(req, domain.FormatMarkdown, a.settings.ContentLimit)

	text, err := generateText(ctx, a.llm, prompt,
		llms.WithModel(opts.model),
		llms.WithTemperature(opts.temperature),
		llms.WithMaxTokens(opts.maxTokens),
	)
	if err != nil {
		return nil, err
	}
	return &domain.RawOutput{Text: text, Format: domain.FormatMarkdown, Model: opts.model}, nil
}
