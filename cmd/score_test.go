package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/quiz"
	"github.com/abhisek/beautylens/internal/store"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		arg     string
		id      int
		val     string
		wantErr bool
	}{
		{"1=A", 1, "A", false},
		{" 12 = b ", 12, "b", false},
		{"3=verdant_curator", 3, "verdant_curator", false},
		{"A", 0, "", true},
		{"x=A", 0, "", true},
		{"4=", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			id, val, err := parseAnswer(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.val, val)
		})
	}
}

func TestApplyAnswers(t *testing.T) {
	cat := catalog.Default()
	eng, err := applyAnswers(cat, false, []string{"1=a", "1=C", "2=vitality_alchemist"})
	require.NoError(t, err)

	assert.Equal(t, 2, eng.AnsweredCount())
	k, _ := eng.Answer(1)
	assert.Equal(t, persona.SymmetrySavant, k)
	k, _ = eng.Answer(2)
	assert.Equal(t, persona.VitalityAlchemist, k)
}

func TestApplyAnswersRejectsUnknown(t *testing.T) {
	cat := catalog.Default()

	_, err := applyAnswers(cat, false, []string{"99=A"})
	assert.ErrorIs(t, err, quiz.ErrUnknownQuestion)

	_, err = applyAnswers(cat, false, []string{"1=Z"})
	assert.ErrorIs(t, err, quiz.ErrUnknownOption)
}

func TestRunScoreJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, catalog.Default(), false, true, []string{"1=B", "2=B"}))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.EqualValues(t, 2, out["answered"])
	assert.EqualValues(t, 20, out["total"])
	assert.EqualValues(t, 10, out["completion"])
	assert.Equal(t, false, out["complete"])

	tally := out["tally"].(map[string]any)
	assert.Len(t, tally, 4)
	assert.EqualValues(t, 0, tally["resonant_empath"])
	assert.Equal(t, "verdant_curator", out["dominant"], "tie goes to the earlier persona")
}

func TestRunScoreNoAnswers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, catalog.Default(), false, true, nil))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Nil(t, out["dominant"])
	assert.EqualValues(t, 0, out["completion"])

	buf.Reset()
	require.NoError(t, runScore(&buf, catalog.Default(), false, false, nil))
	assert.Contains(t, buf.String(), "Answered:  0/20 (0%)")
	assert.Contains(t, buf.String(), "none yet")
}

func TestRunScoreText(t *testing.T) {
	cat := catalog.Default()
	var buf bytes.Buffer
	require.NoError(t, runScore(&buf, cat, false, false, []string{"1=A"}))

	out := buf.String()
	assert.Contains(t, out, "Answered:  1/20 (5%)")
	p := cat.Persona(persona.ResonantEmpath)
	assert.Contains(t, out, "Dominant:  "+p.Badge()+" "+p.Title)
}

func TestPrintPersonas(t *testing.T) {
	var buf bytes.Buffer
	printPersonas(&buf, catalog.Default())
	out := buf.String()

	idx := func(s string) int { return bytes.Index(buf.Bytes(), []byte(s)) }
	assert.Contains(t, out, "(resonant_empath)")
	assert.Less(t, idx("(resonant_empath)"), idx("(verdant_curator)"))
	assert.Less(t, idx("(symmetry_savant)"), idx("(vitality_alchemist)"))
}

func TestDistribution(t *testing.T) {
	results := []store.ResultRecord{
		{Dominant: "verdant_curator"},
		{Dominant: "verdant_curator"},
		{Dominant: "symmetry_savant"},
		{Dominant: ""},
	}
	counts, none := distribution(results)
	assert.Equal(t, 2, counts[persona.VerdantCurator])
	assert.Equal(t, 1, counts[persona.SymmetrySavant])
	assert.Equal(t, 0, counts[persona.ResonantEmpath])
	assert.Equal(t, 1, none)
}

func TestPrintStats(t *testing.T) {
	cat := catalog.Default()
	results := []store.ResultRecord{
		{Nickname: "mia", FinishedAt: time.Now(), Answered: 20, TotalQuestions: 20, Dominant: "resonant_empath"},
		{FinishedAt: time.Now(), Answered: 0, TotalQuestions: 20},
	}

	var buf bytes.Buffer
	printStats(&buf, cat, results, 10)
	out := buf.String()
	assert.Contains(t, out, "Mia")
	assert.Contains(t, out, "Anonymous")
	assert.Contains(t, out, "Persona Distribution (2 runs)")
	assert.Contains(t, out, "No answers")

	buf.Reset()
	printStats(&buf, cat, nil, 10)
	assert.Equal(t, "No finished quizzes yet.\n", buf.String())
}

func TestPrintLLMEvents(t *testing.T) {
	events := []store.LLMEventRecord{
		{ID: 1, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{
			Model: "gpt-4o-mini", Purpose: "reading", InputTokens: 2000, OutputTokens: 1000, Success: true,
		}},
		{ID: 2, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{
			Model: "some-local-model", Purpose: "other",
		}},
	}

	var buf bytes.Buffer
	printLLMEvents(&buf, filterPurpose(events, "reading"))
	out := buf.String()
	assert.Contains(t, out, "gpt-4o-mini")
	assert.NotContains(t, out, "some-local-model")
	assert.Contains(t, out, "Estimated total: $0.0009")

	buf.Reset()
	printLLMEvents(&buf, events)
	assert.Contains(t, buf.String(), "(partial)")

	buf.Reset()
	printLLMEvents(&buf, nil)
	assert.Equal(t, "No LLM events found.\n", buf.String())
}
