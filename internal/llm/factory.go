package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider builds the configured provider and wraps it so that
// callers go through retry, then recording, then the vendor SDK.
// rec may be nil, in which case calls are only logged.
func NewProvider(ctx context.Context, cfg Config, rec Recorder, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	recorded := WithRecording(base, cfg.Provider, rec, logger)
	return WithRetry(recorded, cfg.Retry, logger), nil
}
