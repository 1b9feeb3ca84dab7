package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/beautylens/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen show a short status on the right of the
// header, e.g. answered/total.
type StatusProvider interface {
	Status() string
}

// Revealer is notified when the screen above it is popped and it becomes
// active again.
type Revealer interface {
	Revealed() tea.Cmd
}
