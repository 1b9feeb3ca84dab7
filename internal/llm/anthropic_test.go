package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicStructuredReply(t *testing.T) {
	var body map[string]any
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicReply(`{"headline":"Gentle eye","strengths":["warmth"]}`, "end_turn"))
	})
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	req := UserPrompt("You read personas.", "Who am I?")
	req.Schema = readingSchema()
	req.MaxTokens = 256
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"headline":"Gentle eye","strengths":["warmth"]}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.EqualValues(t, 256, body["max_tokens"])
}

func TestAnthropicTruncatedReply(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicReply(`{"headline":"Gen`, "max_tokens"))
	})
	req := UserPrompt("", "Who am I?")
	req.Schema = readingSchema()
	req.MaxTokens = 8

	_, err := p.Generate(context.Background(), req)
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestAnthropicSchemaMismatch(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicReply(`{"headline":"only"}`, "end_turn"))
	})
	req := UserPrompt("", "Who am I?")
	req.Schema = readingSchema()
	req.MaxTokens = 64

	_, err := p.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestAnthropicRateLimited(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	})
	_, err := p.Generate(context.Background(), Request{MaxTokens: 16, Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestAnthropicServerError(t *testing.T) {
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"oops"}}`))
	})
	_, err := p.Generate(context.Background(), Request{MaxTokens: 16, Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
}
