package provider

import (
	"doc-quiz/internal/domain"
)

// Settings are the defaults an adapter applies when a request does not override them.
type Settings struct {
	APIKey       string
	Model        string
	BaseURL      string
	Temperature  float64
	MaxTokens    int
	ContentLimit int
}

// base carries the fields and option resolution shared by every adapter.
type base struct {
	kind      domain.ProviderType
	settings  Settings
	available bool
}

func newBase(kind domain.ProviderType, s Settings, available bool) base {
	if s.ContentLimit == 0 {
		s.ContentLimit = DefaultContentLimit
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = 4000
	}
	return base{kind: kind, settings: s, available: available}
}

func (b *base) Type() domain.ProviderType { return b.kind }

func (b *base) IsAvailable() bool { return b.available }

func (b *base) Model() string { return b.settings.Model }

type resolvedOptions struct {
	model       string
	temperature float64
	maxTokens   int
}

func (b *base) resolve(opts domain.GenerateOptions) resolvedOptions {
	r := resolvedOptions{
		model:       b.settings.Model,
		temperature: b.settings.Temperature,
		maxTokens:   b.settings.MaxTokens,
	}
	if opts.Model != "" {
		r.model = opts.Model
	}
	if opts.Temperature != nil {
		r.temperature = *opts.Temperature
	}
	if opts.MaxTokens > 0 {
		r.maxTokens = opts.MaxTokens
	}
	return r
}

func (b *base) checkAvailable() error {
	if !b.available {
		return domain.NewProviderUnavailableError(b.kind)
	}
	return nil
}
