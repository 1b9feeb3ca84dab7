package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/catalog"
	quizengine "github.com/abhisek/beautylens/internal/quiz"
	"github.com/abhisek/beautylens/internal/router"
	"github.com/abhisek/beautylens/internal/screen"
	"github.com/abhisek/beautylens/internal/screens"
	"github.com/abhisek/beautylens/internal/screens/result"
	"github.com/abhisek/beautylens/internal/session"
	"github.com/abhisek/beautylens/internal/ui/components"
	"github.com/abhisek/beautylens/internal/ui/layout"
	"github.com/abhisek/beautylens/internal/ui/theme"
)

type phase int

const (
	phaseNickname phase = iota
	phaseQuestions
)

// QuizScreen walks through the questions one at a time.
type QuizScreen struct {
	env     screens.Env
	sess    *session.Session
	phase   phase
	name    components.TextInput
	index   int
	choices components.ChoiceList
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a quiz screen with a fresh session.
func New(env screens.Env) *QuizScreen {
	sess := session.New(context.Background(), env.Catalog, env.Repo, session.Options{
		StrictOptions: env.StrictOptions,
		Logger:        env.Logger,
	})
	return &QuizScreen{
		env:  env,
		sess: sess,
		name: components.NewTextInput("your name (optional)", 32),
	}
}

// Session returns the run behind this screen.
func (s *QuizScreen) Session() *session.Session {
	return s.sess
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Status() string {
	eng := s.sess.Engine()
	return fmt.Sprintf("%d/%d answered", eng.AnsweredCount(), eng.TotalQuestions())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseNickname {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter/A-D", Description: "Choose"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "R", Description: "Results"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.phase == phaseNickname {
		return s.updateNickname(msg)
	}

	switch msg := msg.(type) {
	case components.ChoiceMadeMsg:
		s.choose(msg.Label)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "left", "shift+tab":
			s.goTo(s.index - 1)
			return s, nil
		case "right", "tab":
			s.goTo(s.index + 1)
			return s, nil
		case "r":
			return s, s.finish()
		}
	}

	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

func (s *QuizScreen) updateNickname(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
		s.sess.SetNickname(s.name.Value())
		s.sess.Start(context.Background())
		s.phase = phaseQuestions
		s.goTo(0)
		return s, nil
	}
	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	return s, cmd
}

func (s *QuizScreen) question() catalog.Question {
	return s.env.Catalog.QuestionAt(s.index)
}

// goTo shows question i, clamped to the catalog, with its current answer
// preselected.
func (s *QuizScreen) goTo(i int) {
	i = min(max(i, 0), s.env.Catalog.Len()-1)
	s.index = i
	s.errMsg = ""

	q := s.question()
	opts := make([]components.Choice, len(q.Options))
	for j, o := range q.Options {
		opts[j] = components.Choice{Label: o.Label, Text: o.Text, Detail: o.Analysis}
	}
	s.choices = components.NewChoiceList(opts)

	if key, ok := s.sess.Engine().Answer(q.ID); ok {
		if opt, ok := q.OptionFor(key); ok {
			for j, o := range q.Options {
				if o.Label == opt.Label {
					s.choices.Chosen, s.choices.Cursor = j, j
				}
			}
		}
	}
}

func (s *QuizScreen) choose(label string) {
	q := s.question()
	if err := s.sess.Engine().SelectOption(q.ID, label); err != nil {
		s.errMsg = selectErrorText(err)
		return
	}
	s.errMsg = ""
}

func (s *QuizScreen) finish() tea.Cmd {
	sum := s.sess.Finish(context.Background())
	return router.Replace(result.New(s.env, s.sess, sum))
}

func selectErrorText(err error) string {
	switch {
	case errors.Is(err, quizengine.ErrUnknownOption):
		return "That option is not part of this question."
	case errors.Is(err, quizengine.ErrPersonaNotOffered):
		return "That lens is not offered by this question."
	default:
		return err.Error()
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.phase == phaseNickname {
		return s.viewNickname(width, height)
	}

	cw := min(width-4, 90)
	q := s.question()
	eng := s.sess.Engine()

	var b strings.Builder
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Question %d of %d  ·  %s", s.index+1, eng.TotalQuestions(), q.Theme)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choices.View(cw))

	if key, ok := eng.Answer(q.ID); ok {
		p := s.env.Catalog.Persona(key)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.PersonaColor(key)).Bold(true).
			Render(fmt.Sprintf("%s Lens activated: %s", p.Badge(), p.Title)))
		b.WriteString("\n")
		b.WriteString(theme.Muted.Width(cw).Render(p.Summary))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Failure.Render(s.errMsg) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("%d/%d", eng.AnsweredCount(), eng.TotalQuestions()),
		eng.CompletionPercentage(), true, cw).View())
	if eng.Complete() {
		b.WriteString("\n" + theme.Hint.Render("All questions answered. Press R to reveal your lens."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).PaddingTop(1).Render(b.String()))
}

func (s *QuizScreen) viewNickname(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Before we begin"),
		"",
		theme.Body.Render("What should we call you?"),
		"",
		s.name.View(),
		"",
		theme.Hint.Render("Press Enter to start. Leave empty to stay anonymous."),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}
