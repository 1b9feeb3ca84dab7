package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/quiz"
	"github.com/abhisek/beautylens/internal/ui/theme"
)

// TallyGrid renders one bar per persona in display order. The dominant
// persona, if any, is highlighted.
type TallyGrid struct {
	Tally    quiz.Tally
	Titles   map[persona.Key]string
	Dominant persona.Key
	Width    int
}

// View renders the grid.
func (g TallyGrid) View() string {
	total := g.Tally.Total()
	labelWidth := 0
	for _, k := range persona.Keys() {
		labelWidth = max(labelWidth, lipgloss.Width(g.title(k)))
	}

	var b strings.Builder
	for _, k := range persona.Keys() {
		n := g.Tally.Get(k)
		pct := 0
		if total > 0 {
			pct = n * 100 / total
		}

		label := fmt.Sprintf("%s %-*s", k.Badge(), labelWidth, g.title(k))
		style := theme.Unselected
		if k == g.Dominant {
			style = lipgloss.NewStyle().Foreground(theme.PersonaColor(k)).Bold(true)
		}

		bar := ProgressBar{
			Percent: pct,
			Width:   max(g.Width-lipgloss.Width(label)-8, 10),
			Fill:    theme.PersonaColor(k),
		}
		b.WriteString(style.Render(label) + "  " + bar.View() + theme.Muted.Render(fmt.Sprintf(" %3d", n)))
		b.WriteString("\n")
	}
	return b.String()
}

func (g TallyGrid) title(k persona.Key) string {
	if t, ok := g.Titles[k]; ok {
		return t
	}
	return k.String()
}
