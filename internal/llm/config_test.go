package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/beautylens/internal/config"
)

func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestFromSettingsExplicitProvider(t *testing.T) {
	clearVendorKeys(t)
	cfg, ok := FromSettings(config.LLMConfig{
		Provider:     ProviderAnthropic,
		AnthropicKey: "a-key",
		Timeout:      5 * time.Second,
	})
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "a-key", cfg.Anthropic.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestFromSettingsDiscoveryOrder(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")

	cfg, ok := FromSettings(config.LLMConfig{})
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "o", cfg.OpenAI.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	t.Setenv("GEMINI_API_KEY", "g")
	cfg, ok = FromSettings(config.LLMConfig{})
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, cfg.Provider)
}

func TestFromSettingsNothingConfigured(t *testing.T) {
	clearVendorKeys(t)
	cfg, ok := FromSettings(config.LLMConfig{})
	assert.False(t, ok)
	assert.ErrorIs(t, cfg.Validate(), ErrNotConfigured)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{Provider: ProviderMock}.Validate())
	assert.ErrorContains(t, Config{Provider: ProviderOpenAI}.Validate(), "BEAUTYLENS_OPENAI_API_KEY")
	assert.ErrorContains(t, Config{Provider: ProviderGemini}.Validate(), "BEAUTYLENS_GEMINI_API_KEY")
	assert.ErrorContains(t, Config{Provider: "cohere"}.Validate(), `"cohere"`)
}

func TestNewProviderMockIsWrapped(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock, Retry: fastRetry()}, &fakeRecorder{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &RetryProvider{}, p)
	assert.Equal(t, "mock", p.ModelID())
}

func TestNewProviderRejectsMissingKey(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderAnthropic}, nil, nil)
	assert.Error(t, err)
}
