package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a whole-number percentage.
type ProgressBar struct {
	Label       string
	Percent     int
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// NewProgressBar creates a progress bar with the default fill.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	pct := min(max(p.Percent, 0), 100)
	filled := barWidth * pct / 100
	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += theme.Muted.Render(fmt.Sprintf("  %d%%", pct))
	}
	return result
}
