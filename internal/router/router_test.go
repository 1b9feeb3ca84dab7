package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/beautylens/internal/screen"
)

type stubScreen struct {
	title    string
	initRan  bool
	revealed int
	lastMsg  tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type revealScreen struct{ stubScreen }

func (s *revealScreen) Revealed() tea.Cmd {
	s.revealed++
	return nil
}

func TestPushRunsInit(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	quiz := &stubScreen{title: "quiz"}
	r.Push(quiz)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "quiz", r.Active().Title())
	assert.True(t, quiz.initRan)
}

func TestPopRevealsPrevious(t *testing.T) {
	home := &revealScreen{stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "history"})
	r.Pop()

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
	assert.Equal(t, 1, home.revealed)
}

func TestPopNoopAtRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	assert.Nil(t, r.Pop())
	assert.Equal(t, 1, r.Depth())
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "quiz"})

	result := &stubScreen{title: "result"}
	r.Update(ReplaceScreenMsg{Screen: result})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "result", r.Active().Title())
	assert.True(t, result.initRan)

	r.Update(PopScreenMsg{})
	assert.Equal(t, "home", r.Active().Title())
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, home.lastMsg)
	assert.Equal(t, "home", r.View(80, 24))
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}
	assert.Equal(t, PushScreenMsg{Screen: s}, Push(s)())
	assert.Equal(t, ReplaceScreenMsg{Screen: s}, Replace(s)())
	assert.Equal(t, PopScreenMsg{}, Back()())
}
