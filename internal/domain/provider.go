package domain

import (
	"context"
	"strings"
)

// ProviderType identifies an upstream LLM vendor.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderGemini    ProviderType = "gemini"
	ProviderDeepSeek  ProviderType = "deepseek"
	ProviderGrok      ProviderType = "grok"
	ProviderOllama    ProviderType = "ollama"
)

// ParseProviderType normalizes a user-supplied provider name.
func ParseProviderType(s string) ProviderType {
	return ProviderType(strings.ToLower(strings.TrimSpace(s)))
}

// OutputFormat is the shape of raw text a provider returns.
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
)

// GenerateOptions are per-request overrides. Zero values mean provider defaults.
type GenerateOptions struct {
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"maxTokens,omitempty"`
}

// GenerateRequest is what an adapter needs to produce one quiz.
type GenerateRequest struct {
	Content                string
	NumberOfQuestions      int
	Difficulty             DifficultySpec
	AdditionalInstructions string
	Options                GenerateOptions
}

// RawOutput is the unparsed provider response.
type RawOutput struct {
	Text   string
	Format OutputFormat
	Model  string
}

// ProviderAdapter is the capability every upstream LLM integration exposes.
type ProviderAdapter interface {
	Type() ProviderType
	// IsAvailable reports whether credentials were present at construction.
	IsAvailable() bool
	// OutputFormat is the format GenerateQuiz output should be parsed as.
	OutputFormat() OutputFormat
	// Model is the default model used when a request does not override it.
	Model() string
	GenerateQuiz(ctx context.Context, req GenerateRequest) (*RawOutput, error)
}
