package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/router"
	"github.com/abhisek/beautylens/internal/screens"
	"github.com/abhisek/beautylens/internal/screens/quiz"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	m := newAppModel(screens.Env{Catalog: catalog.Default()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscPopsNestedScreen(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &quiz.QuizScreen{}, m.router.Active())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	m.Update(cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestHeaderShowsQuizStatus(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Update(cmd())

	frame := m.frame()
	assert.Contains(t, frame, "0/20 answered")
	assert.Contains(t, frame, "Start")
}

func TestTooSmall(t *testing.T) {
	m := newAppModel(screens.Env{Catalog: catalog.Default()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, updated.(AppModel).frame(), "Terminal too small")
}
