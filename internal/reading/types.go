// Package reading produces an optional AI-written persona reading from a
// finished quiz.
package reading

import (
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/quiz"
)

// Choice is one answered question as shown to the model.
type Choice struct {
	Theme    string
	Prompt   string
	Option   string
	Analysis string
	Persona  persona.Key
}

// Input is everything the reading is based on.
type Input struct {
	Nickname string
	Dominant persona.Persona
	Tally    quiz.Tally
	Answered int
	Total    int
	Choices  []Choice
}

// Reading is the structured model output.
type Reading struct {
	Headline   string   `json:"headline"`
	Reflection string   `json:"reflection"`
	Strengths  []string `json:"strengths"`
	BlindSpot  string   `json:"blind_spot"`
}

// InputFrom collects the reading input from an engine. It returns false
// while no dominant persona exists.
func InputFrom(eng *quiz.Engine, nickname string) (Input, bool) {
	view := eng.Snapshot()
	if !view.HasResult {
		return Input{}, false
	}

	cat := eng.Catalog()
	answers := eng.Answers()
	in := Input{
		Nickname: nickname,
		Dominant: cat.Persona(view.Dominant),
		Tally:    view.Tally,
		Answered: view.Answered,
		Total:    view.Total,
	}
	for _, q := range cat.Questions() {
		key, ok := answers[q.ID]
		if !ok {
			continue
		}
		c := Choice{Theme: q.Theme, Prompt: q.Prompt, Persona: key}
		if opt, ok := q.OptionFor(key); ok {
			c.Option = opt.Text
			c.Analysis = opt.Analysis
		}
		in.Choices = append(in.Choices, c)
	}
	return in, true
}
