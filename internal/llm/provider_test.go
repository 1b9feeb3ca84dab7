package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readingSchema() *Schema {
	return &Schema{
		Name:        "test-reading",
		Description: "A short persona reading",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"headline":  map[string]any{"type": "string"},
				"strengths": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
				"tone":      map[string]any{"type": "string", "enum": []any{"warm", "cool"}},
			},
			"required":             []any{"headline", "strengths"},
			"additionalProperties": false,
		},
	}
}

func TestMockProviderReturnsQueuedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), UserPrompt("", "first"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)
	assert.Equal(t, "mock", first.Model)

	second, err := mock.Generate(context.Background(), UserPrompt("", "second"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(second.Content))
}

func TestMockProviderEmptyQueue(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestMockProviderFallback(t *testing.T) {
	mock := NewMockProvider()
	mock.Fallback = func(req Request) (json.RawMessage, error) {
		return json.RawMessage(`{"echo":"` + req.Messages[0].Content + `"}`), nil
	}

	resp, err := mock.Generate(context.Background(), UserPrompt("", "hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"echo":"hi"}`, string(resp.Content))
}

func TestMockProviderValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"headline":"x"}`)})
	req := UserPrompt("", "read me")
	req.Schema = readingSchema()

	_, err := mock.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, _ = mock.Generate(context.Background(), UserPrompt("sys", "hello"))

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sys", calls[0].System)
	assert.Equal(t, RoleUser, calls[0].Messages[0].Role)
	assert.Equal(t, "hello", calls[0].Messages[0].Content)

	calls[0].System = "changed"
	assert.Equal(t, "sys", mock.Calls()[0].System)
}

func TestMockProviderQueuedError(t *testing.T) {
	boom := errors.New("boom")
	mock := NewMockProvider(MockResponse{Err: boom})
	_, err := mock.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestPurposeContext(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	ctx := WithPurpose(context.Background(), "reading")
	assert.Equal(t, "reading", PurposeFrom(ctx))
}

func TestErrorTypesUnwrap(t *testing.T) {
	cause := errors.New("socket closed")

	assert.ErrorIs(t, &ErrRateLimit{Err: cause}, cause)
	assert.ErrorIs(t, &ErrInvalidResponse{Err: cause}, cause)
	assert.ErrorIs(t, &ErrProviderUnavailable{Err: cause}, cause)
	assert.Equal(t, "LLM provider unavailable", (&ErrProviderUnavailable{}).Error())

	var rl *ErrRateLimit
	assert.ErrorAs(t, classifyStatus(429, cause), &rl)
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(503, cause), &unavail)
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	require.True(t, ok)
	assert.InDelta(t, 0.75, cost, 1e-9)

	_, ok = EstimateCost("mock", 10, 10)
	assert.False(t, ok)
}
