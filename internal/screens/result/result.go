package result

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/reading"
	"github.com/abhisek/beautylens/internal/router"
	"github.com/abhisek/beautylens/internal/screen"
	"github.com/abhisek/beautylens/internal/screens"
	"github.com/abhisek/beautylens/internal/session"
	"github.com/abhisek/beautylens/internal/ui/components"
	"github.com/abhisek/beautylens/internal/ui/layout"
	"github.com/abhisek/beautylens/internal/ui/theme"
)

const pollInterval = 250 * time.Millisecond

type readingState int

const (
	readingOff readingState = iota
	readingPending
	readingReady
	readingFailed
)

// readingPollMsg asks the screen to check for a finished reading.
type readingPollMsg struct{}

// ResultScreen shows the dominant persona, the tally and the optional AI
// reading.
type ResultScreen struct {
	env     screens.Env
	sess    *session.Session
	sum     *session.Summary
	state   readingState
	reading *reading.Reading
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen for a finished session.
func New(env screens.Env, sess *session.Session, sum *session.Summary) *ResultScreen {
	return &ResultScreen{env: env, sess: sess, sum: sum}
}

func (s *ResultScreen) Init() tea.Cmd {
	return s.requestReading()
}

func (s *ResultScreen) requestReading() tea.Cmd {
	if s.env.Reading == nil {
		return nil
	}
	in, ok := reading.InputFrom(s.sess.Engine(), s.sess.Nickname)
	if !ok {
		return nil
	}
	s.state = readingPending
	s.reading = nil
	s.env.Reading.Request(context.Background(), in)
	return poll()
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return readingPollMsg{} })
}

func (s *ResultScreen) Title() string {
	return "Your Lens"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter/Esc", Description: "Home"}}
	if s.state == readingFailed {
		hints = append(hints, layout.KeyHint{Key: "G", Description: "Retry reading"})
	}
	return hints
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case readingPollMsg:
		if s.state != readingPending {
			return s, nil
		}
		r, done, err := s.env.Reading.Consume()
		if !done {
			return s, poll()
		}
		if err != nil {
			s.state = readingFailed
			return s, nil
		}
		s.state, s.reading = readingReady, r
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, router.Back()
		case "g":
			if s.state == readingFailed {
				return s, s.requestReading()
			}
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	cw := min(width-4, 90)
	var b strings.Builder

	if !s.sum.HasResult {
		b.WriteString(theme.Title.Width(cw).Render("No lens yet"))
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Width(cw).Render("Answer every question to discover how you see beauty."))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
	}

	p := s.env.Catalog.Persona(s.sum.Dominant)
	accent := lipgloss.NewStyle().Foreground(theme.PersonaColor(p.Key)).Bold(true)

	if s.sess.Nickname != "" {
		b.WriteString(theme.Muted.Render(s.sess.Nickname+", your dominant lens is") + "\n")
	} else {
		b.WriteString(theme.Muted.Render("Your dominant lens is") + "\n")
	}
	b.WriteString(accent.Render(fmt.Sprintf("%s  %s", p.Badge(), p.Title)) + "\n\n")
	b.WriteString(theme.Body.Width(cw).Render(p.Summary) + "\n\n")
	b.WriteString(theme.Hint.Width(cw).Render(p.Perception) + "\n\n")

	if s.sum.Answered < s.sum.Total {
		b.WriteString(theme.Muted.Render(fmt.Sprintf(
			"Based on %d of %d answers (%d%%). Answer every question for a complete picture.",
			s.sum.Answered, s.sum.Total, s.sum.Completion)) + "\n\n")
	}

	titles := make(map[persona.Key]string, persona.Count)
	for _, pp := range s.env.Catalog.Personas() {
		titles[pp.Key] = pp.Title
	}
	b.WriteString(components.TallyGrid{Tally: s.sum.Tally, Titles: titles, Dominant: p.Key, Width: cw}.View())

	if section := s.readingView(cw); section != "" {
		b.WriteString("\n" + section)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).PaddingTop(1).Render(b.String()))
}

func (s *ResultScreen) readingView(cw int) string {
	switch s.state {
	case readingPending:
		return theme.Hint.Render("Composing your personal reading...")
	case readingFailed:
		return theme.Muted.Render("A personal reading is not available right now.")
	case readingReady:
		r := s.reading
		var b strings.Builder
		b.WriteString(theme.Chosen.Render("✦ "+r.Headline) + "\n\n")
		b.WriteString(theme.Body.Width(cw).Render(r.Reflection) + "\n\n")
		for _, st := range r.Strengths {
			b.WriteString(theme.Body.Width(cw).Render("  • "+st) + "\n")
		}
		if r.BlindSpot != "" {
			b.WriteString("\n" + theme.Hint.Width(cw).Render("Blind spot: "+r.BlindSpot) + "\n")
		}
		return theme.Card.Width(cw).Render(strings.TrimRight(b.String(), "\n"))
	}
	return ""
}
