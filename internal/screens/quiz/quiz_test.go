package quiz

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/router"
	"github.com/abhisek/beautylens/internal/screens"
	"github.com/abhisek/beautylens/internal/screens/result"
	"github.com/abhisek/beautylens/internal/ui/components"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// send delivers msg and feeds any ChoiceMadeMsg the screen emits back in,
// as the Bubble Tea runtime would.
func send(t *testing.T, s *QuizScreen, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	if made, ok := cmd().(components.ChoiceMadeMsg); ok {
		_, cmd = s.Update(made)
	}
	return cmd
}

func startedScreen(t *testing.T) *QuizScreen {
	t.Helper()
	s := New(screens.Env{Catalog: catalog.Default()})
	for _, r := range "mia" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))
	require.Equal(t, phaseQuestions, s.phase)
	return s
}

func TestNicknameThenFirstQuestion(t *testing.T) {
	s := startedScreen(t)
	assert.Equal(t, "mia", s.Session().Nickname)
	assert.Equal(t, 0, s.index)
	assert.Equal(t, "0/20 answered", s.Status())
	assert.Contains(t, s.View(100, 30), "Question 1 of 20")
}

func TestChooseByLabel(t *testing.T) {
	s := startedScreen(t)
	send(t, s, keyPress('a'))

	key, ok := s.Session().Engine().Answer(1)
	require.True(t, ok)
	assert.Equal(t, persona.ResonantEmpath, key)
	assert.Equal(t, "1/20 answered", s.Status())

	title := catalog.Default().Persona(persona.ResonantEmpath).Title
	assert.Contains(t, s.View(100, 30), "Lens activated: "+title)
}

func TestChangeAnswerOverwrites(t *testing.T) {
	s := startedScreen(t)
	send(t, s, keyPress('a'))
	send(t, s, keyPress('c'))

	eng := s.Session().Engine()
	assert.Equal(t, 1, eng.AnsweredCount())
	key, _ := eng.Answer(1)
	assert.Equal(t, persona.SymmetrySavant, key)
}

func TestCursorAndEnter(t *testing.T) {
	s := startedScreen(t)
	send(t, s, specialKey(tea.KeyDown))
	send(t, s, specialKey(tea.KeyEnter))

	key, ok := s.Session().Engine().Answer(1)
	require.True(t, ok)
	assert.Equal(t, persona.VerdantCurator, key)
}

func TestNavigationKeepsAnswers(t *testing.T) {
	s := startedScreen(t)
	send(t, s, keyPress('b'))
	send(t, s, specialKey(tea.KeyRight))
	assert.Equal(t, 1, s.index)
	assert.Equal(t, -1, s.choices.Chosen)

	send(t, s, specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.index)
	assert.Equal(t, 1, s.choices.Chosen, "previous answer is preselected")

	send(t, s, specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.index, "clamped at the first question")
}

func TestNavigationClampsAtEnd(t *testing.T) {
	s := startedScreen(t)
	for range 25 {
		send(t, s, specialKey(tea.KeyRight))
	}
	assert.Equal(t, 19, s.index)
}

func TestCompleteQuiz(t *testing.T) {
	s := startedScreen(t)
	for i := range 20 {
		send(t, s, keyPress('d'))
		if i < 19 {
			send(t, s, specialKey(tea.KeyRight))
		}
	}
	eng := s.Session().Engine()
	assert.True(t, eng.Complete())
	assert.Equal(t, 100, eng.CompletionPercentage())
	assert.Contains(t, s.View(100, 30), "Press R to reveal your lens")
}

func TestResultsReplaceQuiz(t *testing.T) {
	s := startedScreen(t)
	send(t, s, keyPress('a'))

	cmd := send(t, s, keyPress('r'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &result.ResultScreen{}, msg.Screen)
	assert.True(t, s.Session().Finished())
}

func TestKeyHintsPerPhase(t *testing.T) {
	s := New(screens.Env{Catalog: catalog.Default()})
	assert.Len(t, s.KeyHints(), 2)
	s.Update(specialKey(tea.KeyEnter))
	assert.Len(t, s.KeyHints(), 5)
	assert.Empty(t, s.Session().Nickname)
}
