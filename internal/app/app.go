// Package app hosts the root Bubble Tea model.
package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/logging"
	"github.com/abhisek/beautylens/internal/router"
	"github.com/abhisek/beautylens/internal/screen"
	"github.com/abhisek/beautylens/internal/screens"
	"github.com/abhisek/beautylens/internal/screens/home"
	"github.com/abhisek/beautylens/internal/ui/layout"
)

var (
	rootHints = []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	nestedHints = []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel rooted at the home screen.
func newAppModel(env screens.Env) AppModel {
	return AppModel{router: router.New(home.New(env))}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer at the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), status(active), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func status(s screen.Screen) string {
	if sp, ok := s.(screen.StatusProvider); ok {
		return sp.Status()
	}
	return ""
}

func (m AppModel) hints(s screen.Screen) []layout.KeyHint {
	if hp, ok := s.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return nestedHints
	}
	return rootHints
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(env screens.Env) error {
	logger := logging.OrDefault(env.Logger)
	logger.Info("starting tui",
		slog.Int("questions", env.Catalog.Len()),
		slog.Bool("history", env.Repo != nil),
		slog.Bool("reading", env.Reading != nil))

	p := tea.NewProgram(newAppModel(env))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
