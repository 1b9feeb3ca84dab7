package personas

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/screen"
	"github.com/abhisek/beautylens/internal/ui/layout"
	"github.com/abhisek/beautylens/internal/ui/theme"
)

// PersonasScreen browses the persona catalog in display order.
type PersonasScreen struct {
	list     []persona.Persona
	selected int
}

var _ screen.Screen = (*PersonasScreen)(nil)
var _ screen.KeyHintProvider = (*PersonasScreen)(nil)

func New(cat *catalog.Catalog) *PersonasScreen {
	return &PersonasScreen{list: cat.Personas()}
}

func (s *PersonasScreen) Init() tea.Cmd { return nil }

func (s *PersonasScreen) Title() string { return "Personas" }

func (s *PersonasScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the persona on display.
func (s *PersonasScreen) Selected() persona.Persona {
	return s.list[s.selected]
}

func (s *PersonasScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "left", "up", "h", "k":
			s.selected = (s.selected + len(s.list) - 1) % len(s.list)
		case "right", "down", "l", "j", "tab":
			s.selected = (s.selected + 1) % len(s.list)
		}
	}
	return s, nil
}

func (s *PersonasScreen) View(width, height int) string {
	cw := min(width-8, 80)
	p := s.Selected()

	tabs := make([]string, len(s.list))
	for i, pp := range s.list {
		style := theme.Muted
		if i == s.selected {
			style = lipgloss.NewStyle().Foreground(theme.PersonaColor(pp.Key)).Bold(true).Underline(true)
		}
		tabs[i] = style.Render(pp.Badge() + " " + pp.Title)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.PersonaColor(p.Key)).Bold(true).
		Render(fmt.Sprintf("%s  %s", p.Badge(), p.Title)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(cw - 6).Render(p.Summary))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(cw - 6).Render(p.Perception))

	content := lipgloss.JoinVertical(lipgloss.Center,
		strings.Join(tabs, "   "),
		"",
		theme.Card.Width(cw).Render(b.String()),
		"",
		theme.Muted.Render(fmt.Sprintf("%d of %d", s.selected+1, len(s.list))),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
