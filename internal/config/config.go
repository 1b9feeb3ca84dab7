// Package config loads beautylens settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. CLI flags override these after Load.
type Config struct {
	DBPath        string `env:"BEAUTYLENS_DB"`
	CatalogPath   string `env:"BEAUTYLENS_CATALOG"`
	LogLevel      string `env:"BEAUTYLENS_LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"BEAUTYLENS_LOG_FILE"`
	StrictOptions bool   `env:"BEAUTYLENS_STRICT" envDefault:"false"`

	LLM LLMConfig
}

// LLMConfig selects and configures the optional AI reading provider.
type LLMConfig struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	// Empty means discover from the standard API key variables.
	Provider string        `env:"BEAUTYLENS_LLM_PROVIDER"`
	Timeout  time.Duration `env:"BEAUTYLENS_LLM_TIMEOUT" envDefault:"30s"`

	AnthropicKey   string `env:"BEAUTYLENS_ANTHROPIC_API_KEY"`
	AnthropicModel string `env:"BEAUTYLENS_ANTHROPIC_MODEL" envDefault:"claude-haiku"`

	OpenAIKey     string `env:"BEAUTYLENS_OPENAI_API_KEY"`
	OpenAIModel   string `env:"BEAUTYLENS_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"BEAUTYLENS_OPENAI_BASE_URL"`

	GeminiKey   string `env:"BEAUTYLENS_GEMINI_API_KEY"`
	GeminiModel string `env:"BEAUTYLENS_GEMINI_MODEL" envDefault:"gemini-flash"`

	OpenRouterKey   string `env:"BEAUTYLENS_OPENROUTER_API_KEY"`
	OpenRouterModel string `env:"BEAUTYLENS_OPENROUTER_MODEL" envDefault:"google/gemini-2.0-flash-exp"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
