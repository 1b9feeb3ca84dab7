package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/persona"
)

// Color palette: soft rose and gold on a dark plum base.
var (
	Primary   = lipgloss.Color("#F472B6") // Rose
	Secondary = lipgloss.Color("#FBBF24") // Gold
	Accent    = lipgloss.Color("#A78BFA") // Lavender
	Success   = lipgloss.Color("#34D399") // Mint
	Error     = lipgloss.Color("#F43F5E") // Red
	Text      = lipgloss.Color("#FDF2F8") // Blush white
	TextDim   = lipgloss.Color("#A1A1AA") // Zinc
	BgDark    = lipgloss.Color("#1C1020") // Plum
	BgCard    = lipgloss.Color("#2A1A30") // Dusk
	Border    = lipgloss.Color("#4A3550") // Mauve
)

// Persona accents, indexed by persona.Key.Index().
var personaColors = [persona.Count]color.Color{
	lipgloss.Color("#F9A8D4"), // resonant empath
	lipgloss.Color("#86EFAC"), // verdant curator
	lipgloss.Color("#93C5FD"), // symmetry savant
	lipgloss.Color("#FCD34D"), // vitality alchemist
}

// PersonaColor returns the accent color of k, or TextDim for an invalid key.
func PersonaColor(k persona.Key) color.Color {
	if !k.Valid() {
		return TextDim
	}
	return personaColors[k.Index()]
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextDim)

	Failure = lipgloss.NewStyle().
		Foreground(Error)
)
