package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/beautylens/internal/config"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds provider selection and credentials.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is the backoff used for interactive readings.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// FromSettings maps the environment settings onto an llm.Config. When no
// provider is named explicitly, the standard vendor key variables are
// probed. ok is false when nothing usable was found.
func FromSettings(s config.LLMConfig) (cfg Config, ok bool) {
	cfg = Config{
		Provider:   s.Provider,
		Anthropic:  AnthropicConfig{APIKey: s.AnthropicKey, Model: s.AnthropicModel},
		OpenAI:     OpenAIConfig{APIKey: s.OpenAIKey, Model: s.OpenAIModel, BaseURL: s.OpenAIBaseURL},
		Gemini:     GeminiConfig{APIKey: s.GeminiKey, Model: s.GeminiModel},
		OpenRouter: OpenRouterConfig{APIKey: s.OpenRouterKey, Model: s.OpenRouterModel},
		Retry:      DefaultRetry(),
		Timeout:    s.Timeout,
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Provider != "" {
		return cfg, true
	}
	return discover(cfg)
}

// discover picks the first provider whose standard key variable is set,
// in the order Gemini, OpenAI, Anthropic, OpenRouter.
func discover(cfg Config) (Config, bool) {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return cfg, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	missing := func(v string) error {
		return fmt.Errorf("%s is required for the %s provider", v, c.Provider)
	}
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missing("BEAUTYLENS_ANTHROPIC_API_KEY")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return missing("BEAUTYLENS_OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missing("BEAUTYLENS_GEMINI_API_KEY")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return missing("BEAUTYLENS_OPENROUTER_API_KEY")
		}
	case ProviderMock:
	case "":
		return ErrNotConfigured
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
