package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/ui/theme"
)

// Choice is one selectable option.
type Choice struct {
	Label  string
	Text   string
	Detail string
}

// ChoiceList is a single-choice option picker. Cursor is the highlighted
// row; Chosen is the committed row or -1. Unlike a graded question there
// is no correct answer and the choice can be changed at any time.
type ChoiceList struct {
	Options []Choice
	Cursor  int
	Chosen  int
}

// NewChoiceList creates a picker with nothing chosen.
func NewChoiceList(options []Choice) ChoiceList {
	return ChoiceList{Options: options, Chosen: -1}
}

// ChoiceMadeMsg is emitted when an option is committed.
type ChoiceMadeMsg struct {
	Index int
	Label string
}

// Update moves the cursor and commits with Enter or the option label key.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, nil
	case "enter", "space":
		return c.commit(c.Cursor)
	}

	for i, opt := range c.Options {
		if strings.EqualFold(key, opt.Label) {
			c.Cursor = i
			return c.commit(i)
		}
	}
	return c, nil
}

func (c ChoiceList) commit(i int) (ChoiceList, tea.Cmd) {
	c.Chosen = i
	label := c.Options[i].Label
	return c, func() tea.Msg { return ChoiceMadeMsg{Index: i, Label: label} }
}

// View renders the options. The detail line is shown under the chosen
// option only.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	textWidth := max(width-8, 10)

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		marker := " "
		if i == c.Chosen {
			marker = "●"
		}

		style := theme.Unselected
		switch {
		case i == c.Chosen:
			style = theme.Chosen
		case i == c.Cursor:
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, opt.Label, opt.Text)
		b.WriteString(style.Width(textWidth + 8).Render(line))
		b.WriteString("\n")

		if i == c.Chosen && opt.Detail != "" {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Italic(true).
				PaddingLeft(8).
				Width(textWidth + 8).
				Render(opt.Detail))
			b.WriteString("\n")
		}
	}
	return b.String()
}
