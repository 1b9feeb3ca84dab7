package reading

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/llm"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/quiz"
)

const validReading = `{
	"headline": "You see beauty in feeling",
	"reflection": "Your answers return again and again to connection.",
	"strengths": ["empathy", "presence"],
	"blind_spot": "Form and structure can slip past you."
}`

func answeredEngine(t *testing.T) *quiz.Engine {
	t.Helper()
	eng := quiz.New(catalog.Default())
	require.NoError(t, eng.SelectAnswer(1, persona.ResonantEmpath))
	require.NoError(t, eng.SelectAnswer(2, persona.ResonantEmpath))
	require.NoError(t, eng.SelectAnswer(3, persona.SymmetrySavant))
	return eng
}

func TestInputFrom(t *testing.T) {
	_, ok := InputFrom(quiz.New(catalog.Default()), "")
	assert.False(t, ok, "no reading without a dominant persona")

	in, ok := InputFrom(answeredEngine(t), "Mira")
	require.True(t, ok)
	assert.Equal(t, "Mira", in.Nickname)
	assert.Equal(t, persona.ResonantEmpath, in.Dominant.Key)
	assert.Equal(t, 3, in.Answered)
	assert.Equal(t, 20, in.Total)
	assert.Equal(t, 2, in.Tally.Get(persona.ResonantEmpath))

	require.Len(t, in.Choices, 3)
	for _, c := range in.Choices {
		assert.NotEmpty(t, c.Option)
		assert.NotEmpty(t, c.Analysis)
	}
	assert.Equal(t, persona.SymmetrySavant, in.Choices[2].Persona)
}

func TestBuildUserMessage(t *testing.T) {
	in, ok := InputFrom(answeredEngine(t), "Mira")
	require.True(t, ok)

	msg := buildUserMessage(in)
	assert.Contains(t, msg, "Reader: Mira")
	assert.Contains(t, msg, "Dominant lens: "+in.Dominant.Title)
	assert.Contains(t, msg, "Answered: 3 of 20")
	assert.Contains(t, msg, "- resonant_empath: 2")
	assert.Contains(t, msg, "- vitality_alchemist: 0")
	assert.Contains(t, msg, in.Choices[0].Analysis)
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validReading)})
	svc := NewService(mock, DefaultConfig(), nil)

	in, _ := InputFrom(answeredEngine(t), "")
	r, err := svc.Generate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "You see beauty in feeling", r.Headline)
	assert.Equal(t, []string{"empathy", "presence"}, r.Strengths)
	assert.NotEmpty(t, r.BlindSpot)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Same(t, Schema, calls[0].Schema)
	assert.Equal(t, systemPrompt, calls[0].System)
	assert.Equal(t, DefaultConfig().MaxTokens, calls[0].MaxTokens)
}

func TestGenerateRejectsOffSchemaOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"headline":"x"}`)})
	svc := NewService(mock, DefaultConfig(), nil)

	in, _ := InputFrom(answeredEngine(t), "")
	_, err := svc.Generate(context.Background(), in)
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestRequestAndConsume(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validReading)})
	svc := NewService(mock, DefaultConfig(), nil)

	_, done, _ := svc.Consume()
	assert.False(t, done)

	in, _ := InputFrom(answeredEngine(t), "")
	svc.Request(t.Context(), in)

	var got *Reading
	require.Eventually(t, func() bool {
		r, done, err := svc.Consume()
		if !done {
			return false
		}
		assert.NoError(t, err)
		got = r
		return true
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "You see beauty in feeling", got.Headline)

	_, done, _ = svc.Consume()
	assert.False(t, done, "result is cleared once consumed")
}

func TestRequestFailureIsReported(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("offline")})
	svc := NewService(mock, DefaultConfig(), nil)

	in, _ := InputFrom(answeredEngine(t), "")
	svc.Request(t.Context(), in)

	require.Eventually(t, func() bool {
		_, done, err := svc.Consume()
		return done && err != nil
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSupersededRequestIsDropped(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	mock := llm.NewMockProvider()
	mock.Fallback = func(llm.Request) (json.RawMessage, error) {
		if calls.Add(1) == 1 {
			<-release
			return json.RawMessage(`{"headline":"old","reflection":"r","strengths":["s"],"blind_spot":"b"}`), nil
		}
		return json.RawMessage(validReading), nil
	}
	svc := NewService(mock, DefaultConfig(), nil)
	in, _ := InputFrom(answeredEngine(t), "")

	svc.Request(t.Context(), in)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, time.Millisecond)
	close(release)
	svc.Request(t.Context(), in)

	var got *Reading
	require.Eventually(t, func() bool {
		r, done, _ := svc.Consume()
		got = r
		return done
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "You see beauty in feeling", got.Headline)
}
