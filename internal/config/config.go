package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Redis   RedisConfig
	Archive ArchiveConfig
	Uploads UploadsConfig
	Quiz    QuizConfig
	LLM     LLMConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

type LoggerConfig struct {
	Level string
	Env   string
}

// RedisConfig is optional; an empty address selects the in-process cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// ArchiveConfig selects the SQL store for generated quizzes. Driver is
// "sqlite", "oracle", or empty to disable archiving.
type ArchiveConfig struct {
	Driver string
	DSN    string
}

type UploadsConfig struct {
	Dir       string
	MaxSizeMB int
}

type QuizConfig struct {
	CacheTTL        time.Duration
	GenerateTimeout time.Duration
	DefaultCount    int
	MaxCount        int
}

// ProviderConfig holds credentials and defaults for one LLM vendor.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

type LLMConfig struct {
	// Providers is the registration order used when no provider is requested.
	Providers   []string
	Temperature float64
	MaxTokens   int
	Retry       RetryConfig

	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Gemini    ProviderConfig
	DeepSeek  ProviderConfig
	Grok      ProviderConfig
	Ollama    ProviderConfig
}

// Provider returns the vendor config by provider name.
func (c LLMConfig) Provider(name string) (ProviderConfig, bool) {
	switch name {
	case "openai":
		return c.OpenAI, true
	case "anthropic":
		return c.Anthropic, true
	case "gemini":
		return c.Gemini, true
	case "deepseek":
		return c.DeepSeek, true
	case "grok":
		return c.Grok, true
	case "ollama":
		return c.Ollama, true
	}
	return ProviderConfig{}, false
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.body_limit_mb", 10)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("redis.db", 0)

	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.max_size_mb", 10)

	v.SetDefault("quiz.cache_ttl", "24h")
	v.SetDefault("quiz.generate_timeout", "120s")
	v.SetDefault("quiz.default_count", 5)
	v.SetDefault("quiz.max_count", 20)

	v.SetDefault("llm.providers", []string{"openai", "anthropic", "gemini", "deepseek", "grok", "ollama"})
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 4000)
	v.SetDefault("llm.retry.max_attempts", 3)
	v.SetDefault("llm.retry.initial_wait", "1s")
	v.SetDefault("llm.retry.max_wait", "10s")
	v.SetDefault("llm.retry.multiplier", 2.0)

	v.SetDefault("llm.openai.model", "gpt-4-turbo-preview")
	v.SetDefault("llm.anthropic.model", "claude-3-sonnet-20240229")
	v.SetDefault("llm.gemini.model", "gemini-1.5-flash")
	v.SetDefault("llm.deepseek.model", "deepseek-chat")
	v.SetDefault("llm.deepseek.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("llm.grok.model", "grok-1")
	v.SetDefault("llm.grok.base_url", "https://api.grok.ai/v1")
	v.SetDefault("llm.ollama.model", "llama3")
}

// LoadConfig reads config.yaml (optional) and applies environment overrides.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Archive: ArchiveConfig{
			Driver: v.GetString("archive.driver"),
			DSN:    v.GetString("archive.dsn"),
		},
		Uploads: UploadsConfig{
			Dir:       v.GetString("uploads.dir"),
			MaxSizeMB: v.GetInt("uploads.max_size_mb"),
		},
		Quiz: QuizConfig{
			CacheTTL:        v.GetDuration("quiz.cache_ttl"),
			GenerateTimeout: v.GetDuration("quiz.generate_timeout"),
			DefaultCount:    v.GetInt("quiz.default_count"),
			MaxCount:        v.GetInt("quiz.max_count"),
		},
		LLM: LLMConfig{
			Providers:   v.GetStringSlice("llm.providers"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			Retry: RetryConfig{
				MaxAttempts: v.GetInt("llm.retry.max_attempts"),
				InitialWait: v.GetDuration("llm.retry.initial_wait"),
				MaxWait:     v.GetDuration("llm.retry.max_wait"),
				Multiplier:  v.GetFloat64("llm.retry.multiplier"),
			},
			OpenAI:    providerConfig(v, "openai"),
			Anthropic: providerConfig(v, "anthropic"),
			Gemini:    providerConfig(v, "gemini"),
			DeepSeek:  providerConfig(v, "deepseek"),
			Grok:      providerConfig(v, "grok"),
			Ollama:    providerConfig(v, "ollama"),
		},
	}

	// Vendor-conventional variables take precedence over LLM_<VENDOR>_* keys.
	overrideString(&config.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	overrideString(&config.LLM.OpenAI.BaseURL, "OPENAI_BASE_URL")
	overrideString(&config.LLM.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	overrideString(&config.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	overrideString(&config.LLM.DeepSeek.APIKey, "DEEPSEEK_API_KEY")
	overrideString(&config.LLM.Grok.APIKey, "GROK_API_KEY")
	overrideString(&config.LLM.Grok.BaseURL, "GROK_BASE_URL")
	overrideString(&config.LLM.Ollama.BaseURL, "OLLAMA_SERVER_URL")
	overrideString(&config.Redis.Address, "REDIS_ADDRESS")
	overrideString(&config.Redis.Password, "REDIS_PASSWORD")
	overrideString(&config.Uploads.Dir, "UPLOADS_DIR")

	return config, nil
}

func providerConfig(v *viper.Viper, name string) ProviderConfig {
	return ProviderConfig{
		APIKey:  v.GetString("llm." + name + ".api_key"),
		Model:   v.GetString("llm." + name + ".model"),
		BaseURL: v.GetString("llm." + name + ".base_url"),
	}
}

func overrideString(dst *string, env string) {
	if val := os.Getenv(env); val != "" {
		*dst = val
	}
}
