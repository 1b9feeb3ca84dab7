// Package quiz implements the answer tally and dominant-persona engine.
//
// The engine stores only the answer map. Tally, completion and the dominant
// persona are derived from it on every read, so they cannot drift from the
// answers that produced them.
package quiz

import (
	"maps"
	"sync"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/persona"
)

// Change describes one applied selection.
type Change struct {
	QuestionID int
	Key        persona.Key
	Previous   persona.Key // zero when the question was unanswered
	Option     string      // label of the matching option, if any
	View       View
}

// Overwrote reports whether the selection replaced an earlier answer.
func (c Change) Overwrote() bool {
	return c.Previous.Valid()
}

// Observer is called after every applied selection.
type Observer func(Change)

// Option configures an Engine.
type Option func(*Engine)

// WithStrictOptions rejects selections whose persona is not among the
// question's own options.
func WithStrictOptions() Option {
	return func(e *Engine) { e.strict = true }
}

// WithObserver registers fn to run after each applied selection. Observers
// run outside the lock, so changes arrive in write order only when there is
// a single writer.
func WithObserver(fn Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, fn) }
}

// Engine owns the answer set for one quiz run.
type Engine struct {
	catalog   *catalog.Catalog
	strict    bool
	observers []Observer

	mu      sync.RWMutex
	answers Answers
}

// New creates an Engine with no answers.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		answers: make(Answers, cat.Len()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Strict reports whether the engine cross-checks personas against options.
func (e *Engine) Strict() bool {
	return e.strict
}

// SelectAnswer records key as the answer to questionID, replacing any
// earlier answer.
func (e *Engine) SelectAnswer(questionID int, key persona.Key) error {
	q, ok := e.catalog.Question(questionID)
	if !ok {
		return &SelectError{QuestionID: questionID, Value: key.String(), Err: ErrUnknownQuestion}
	}
	if !key.Valid() {
		return &SelectError{QuestionID: questionID, Value: key.String(), Err: ErrUnknownPersona}
	}
	if e.strict && !q.Offers(key) {
		return &SelectError{QuestionID: questionID, Value: key.String(), Err: ErrPersonaNotOffered}
	}

	var label string
	if opt, ok := q.OptionFor(key); ok {
		label = opt.Label
	}
	e.apply(questionID, key, label)
	return nil
}

// SelectOption records the persona of the option labelled label.
func (e *Engine) SelectOption(questionID int, label string) error {
	q, ok := e.catalog.Question(questionID)
	if !ok {
		return &SelectError{QuestionID: questionID, Value: label, Err: ErrUnknownQuestion}
	}
	opt, ok := q.Option(label)
	if !ok {
		return &SelectError{QuestionID: questionID, Value: label, Err: ErrUnknownOption}
	}
	e.apply(questionID, opt.Persona, opt.Label)
	return nil
}

func (e *Engine) apply(questionID int, key persona.Key, label string) {
	e.mu.Lock()
	prev := e.answers[questionID]
	e.answers[questionID] = key
	view := Derive(e.answers, e.catalog.Len())
	e.mu.Unlock()

	change := Change{
		QuestionID: questionID,
		Key:        key,
		Previous:   prev,
		Option:     label,
		View:       view,
	}
	for _, fn := range e.observers {
		fn(change)
	}
}

// Answer returns the persona chosen for questionID.
func (e *Engine) Answer(questionID int) (persona.Key, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	k, ok := e.answers[questionID]
	return k, ok
}

// Answers returns a copy of the answer map.
func (e *Engine) Answers() Answers {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.answers)
}

// AnsweredCount returns the number of answered questions.
func (e *Engine) AnsweredCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.answers)
}

// TotalQuestions returns the number of questions in the catalog.
func (e *Engine) TotalQuestions() int {
	return e.catalog.Len()
}

// CompletionPercentage returns the rounded share of answered questions.
func (e *Engine) CompletionPercentage() int {
	return Completion(e.AnsweredCount(), e.catalog.Len())
}

// Tally returns the per-persona vote counts.
func (e *Engine) Tally() Tally {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return CountVotes(e.answers)
}

// DominantPersona returns the highest-voted persona, or false if nothing
// has been answered.
func (e *Engine) DominantPersona() (persona.Key, bool) {
	return Dominant(e.Tally())
}

// Complete reports whether every question has an answer.
func (e *Engine) Complete() bool {
	return e.AnsweredCount() == e.catalog.Len()
}

// Snapshot returns all derived values from a single consistent read.
func (e *Engine) Snapshot() View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Derive(e.answers, e.catalog.Len())
}

// Reset clears every answer.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.answers)
}
