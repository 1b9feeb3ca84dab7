package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/router"
	"github.com/abhisek/beautylens/internal/screen"
	"github.com/abhisek/beautylens/internal/screens"
	"github.com/abhisek/beautylens/internal/screens/history"
	"github.com/abhisek/beautylens/internal/screens/personas"
	"github.com/abhisek/beautylens/internal/screens/quiz"
	"github.com/abhisek/beautylens/internal/store"
	"github.com/abhisek/beautylens/internal/ui/components"
	"github.com/abhisek/beautylens/internal/ui/layout"
	"github.com/abhisek/beautylens/internal/ui/theme"
)

const banner = `█▄▄ █▀▀ ▄▀█ █ █ ▀█▀ █▄█ █   █▀▀ █▄ █ █▀
█▄█ ██▄ █▀█ █▄█  █   █  █▄▄ ██▄ █ ▀█ ▄█`

const tagline = "How do you see beauty?"

// lastResultMsg carries the most recent finished run, if any.
type lastResultMsg struct {
	result *store.ResultRecord
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env  screens.Env
	menu components.Menu
	last *store.ResultRecord
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Revealer = (*HomeScreen)(nil)

// New creates the home screen.
func New(env screens.Env) *HomeScreen {
	items := []components.MenuItem{
		{Label: "TAKE THE QUIZ", Action: func() tea.Cmd {
			return router.Push(quiz.New(env))
		}},
		{Label: "PERSONAS", Action: func() tea.Cmd {
			return router.Push(personas.New(env.Catalog))
		}},
		{Label: "HISTORY", Disabled: env.Repo == nil, Action: func() tea.Cmd {
			return router.Push(history.New(env.Repo, env.Catalog))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{env: env, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadLast()
}

// Revealed refreshes the last result after a quiz or history visit.
func (h *HomeScreen) Revealed() tea.Cmd {
	return h.loadLast()
}

func (h *HomeScreen) loadLast() tea.Cmd {
	repo := h.env.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := repo.RecentResults(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(recs) == 0 {
			return lastResultMsg{}
		}
		return lastResultMsg{result: &recs[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(lastResultMsg); ok {
		h.last = m.result
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	if layout.IsCompact(width, height) {
		sections = append(sections, theme.Title.Render("B E A U T Y L E N S"))
	} else {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner))
	}
	sections = append(sections, theme.Subtitle.Render(tagline))

	badges := make([]string, 0, persona.Count)
	for _, k := range persona.Keys() {
		badges = append(badges, k.Badge())
	}
	sections = append(sections, strings.Join(badges, "  "))

	if line := h.lastLine(); line != "" {
		sections = append(sections, theme.Hint.Render(line))
	}

	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) lastLine() string {
	if h.last == nil {
		return ""
	}
	key, err := persona.ParseKey(h.last.Dominant)
	if err != nil {
		return ""
	}
	p := h.env.Catalog.Persona(key)
	return fmt.Sprintf("Last lens: %s %s (%d/%d answered)", p.Badge(), p.Title, h.last.Answered, h.last.TotalQuestions)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
