package catalog

import "github.com/abhisek/beautylens/internal/persona"

// Option is one selectable answer to a Question. It votes for exactly one persona.
type Option struct {
	Label    string
	Text     string
	Analysis string
	Persona  persona.Key
}

// Question is a single multiple-choice prompt.
type Question struct {
	ID      int
	Theme   string
	Prompt  string
	Options []Option
}

// Option returns the option with the given label.
func (q Question) Option(label string) (Option, bool) {
	for _, o := range q.Options {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}

// Offers reports whether any option of q votes for key.
func (q Question) Offers(key persona.Key) bool {
	for _, o := range q.Options {
		if o.Persona == key {
			return true
		}
	}
	return false
}

// OptionFor returns the option of q that votes for key. A loaded catalog
// has at most one such option per question.
func (q Question) OptionFor(key persona.Key) (Option, bool) {
	for _, o := range q.Options {
		if o.Persona == key {
			return o, true
		}
	}
	return Option{}, false
}

// Catalog is the read-only question and persona content of a quiz.
type Catalog struct {
	questions []Question
	byID      map[int]int
	personas  [persona.Count]persona.Persona
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Questions returns the questions in catalog order. The returned slice is a copy.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// QuestionAt returns the question at position i in catalog order.
func (c *Catalog) QuestionAt(i int) Question {
	return c.questions[i]
}

// Question returns the question with the given id.
func (c *Catalog) Question(id int) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Persona returns the metadata for key. Invalid keys return the zero Persona.
func (c *Catalog) Persona(key persona.Key) persona.Persona {
	if !key.Valid() {
		return persona.Persona{}
	}
	return c.personas[key.Index()]
}

// Personas returns all personas in display order.
func (c *Catalog) Personas() []persona.Persona {
	out := make([]persona.Persona, 0, persona.Count)
	for _, k := range persona.Keys() {
		out = append(out, c.personas[k.Index()])
	}
	return out
}
