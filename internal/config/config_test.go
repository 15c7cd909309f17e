package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Quiz.CacheTTL)
	assert.Equal(t, 5, cfg.Quiz.DefaultCount)
	assert.Equal(t, 20, cfg.Quiz.MaxCount)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
	assert.Equal(t, []string{"openai", "anthropic", "gemini", "deepseek", "grok", "ollama"}, cfg.LLM.Providers)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.LLM.DeepSeek.BaseURL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GROK_BASE_URL", "http://grok.local/v1")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LLM_ANTHROPIC_MODEL", "claude-custom")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("QUIZ_CACHE_TTL", "90m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "http://grok.local/v1", cfg.LLM.Grok.BaseURL)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "claude-custom", cfg.LLM.Anthropic.Model)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 90*time.Minute, cfg.Quiz.CacheTTL)
}

func TestLLMConfig_Provider(t *testing.T) {
	cfg := LLMConfig{DeepSeek: ProviderConfig{APIKey: "k"}}

	pc, ok := cfg.Provider("deepseek")
	assert.True(t, ok)
	assert.Equal(t, "k", pc.APIKey)

	_, ok = cfg.Provider("mistral")
	assert.False(t, ok)
}
