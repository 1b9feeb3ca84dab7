package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/router"
	"github.com/abhisek/beautylens/internal/screen"
	"github.com/abhisek/beautylens/internal/store"
	"github.com/abhisek/beautylens/internal/ui/layout"
	"github.com/abhisek/beautylens/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Results []store.ResultRecord
	Err     error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen lists finished quizzes, newest first. Enter expands a run
// to show its answers.
type HistoryScreen struct {
	repo     store.EventRepo
	catalog  *catalog.Catalog
	results  []store.ResultRecord
	answers  map[string][]store.AnswerRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.EventRepo, cat *catalog.Catalog) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		catalog:  cat,
		answers:  make(map[string][]store.AnswerRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		results, err := repo.RecentResults(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		answers, err := repo.SessionAnswers(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.SessionID] = msg.Answers
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			if len(s.results) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.results[s.selected].SessionID
			if _, ok := s.answers[id]; !ok && s.expanded[s.selected] {
				return s, s.loadAnswers(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No finished quizzes yet. Take the quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, r := range s.results {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		b.WriteString(layout.Center(width, style.Render(prefix+s.summaryLine(r))))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range s.answerLines(r.SessionID) {
				b.WriteString(layout.Center(width, line))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (s *HistoryScreen) summaryLine(r store.ResultRecord) string {
	lens := "no answers"
	if key, err := persona.ParseKey(r.Dominant); err == nil {
		p := s.catalog.Persona(key)
		lens = p.Badge() + " " + p.Title
	}
	who := r.Nickname
	if who == "" {
		who = "anonymous"
	}
	return fmt.Sprintf("%s  %-12s  %2d/%d  %s",
		r.FinishedAt.Local().Format("Jan 02 15:04"), who, r.Answered, r.TotalQuestions, lens)
}

func (s *HistoryScreen) answerLines(sessionID string) []string {
	answers, ok := s.answers[sessionID]
	if !ok {
		return []string{theme.Hint.Render("    loading answers...")}
	}
	if len(answers) == 0 {
		return []string{theme.Hint.Render("    no answers recorded")}
	}

	var lines []string
	for _, a := range answers {
		note := ""
		if a.Overwrote {
			note = " (changed)"
		}
		badge := ""
		if key, err := persona.ParseKey(a.Persona); err == nil {
			badge = key.Badge() + " "
		}
		lines = append(lines, theme.Muted.Render(
			fmt.Sprintf("    Q%-2d  %s  %s%s%s", a.QuestionID, a.OptionLabel, badge, a.Persona, note)))
	}
	return lines
}
