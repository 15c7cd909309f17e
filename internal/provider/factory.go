package provider

import (
	"context"
	"fmt"
	"time"

	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
)

// NewRegistryFromConfig builds one adapter per configured provider name, in the
// configured order, each wrapped with retry.
func NewRegistryFromConfig(ctx context.Context, cfg config.LLMConfig, timeout time.Duration) (*Registry, error) {
	registry := NewRegistry()
	for _, name := range cfg.Providers {
		a, err := newAdapter(ctx, domain.ParseProviderType(name), cfg, timeout)
		if err != nil {
			return nil, err
		}
		registry.Register(WithRetry(a, cfg.Retry))
	}
	return registry, nil
}

func newAdapter(ctx context.Context, kind domain.ProviderType, cfg config.LLMConfig, timeout time.Duration) (domain.ProviderAdapter, error) {
	pc, ok := cfg.Provider(string(kind))
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %q", kind)
	}
	s := Settings{
		APIKey:      pc.APIKey,
		Model:       pc.Model,
		BaseURL:     pc.BaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	var (
		a   domain.ProviderAdapter
		err error
	)
	switch kind {
	case domain.ProviderOpenAI:
		a = NewOpenAIAdapter(s)
	case domain.ProviderAnthropic:
		a = NewAnthropicAdapter(s)
	case domain.ProviderGemini:
		a, err = NewGeminiAdapter(ctx, s)
	case domain.ProviderDeepSeek:
		a, err = NewDeepSeekAdapter(s)
	case domain.ProviderGrok:
		a, err = NewGrokAdapter(s)
	case domain.ProviderOllama:
		a, err = NewOllamaAdapter(s, timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", kind, err)
	}
	return a, nil
}
