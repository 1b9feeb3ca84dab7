package quiz

import (
	"math"
	"slices"

	"github.com/abhisek/beautylens/internal/persona"
)

// Answers maps a question ID to the persona chosen for it.
type Answers map[int]persona.Key

// Tally holds one vote count per persona, indexed by Key.Index().
type Tally [persona.Count]int

// Get returns the count for key, or 0 for an invalid key.
func (t Tally) Get(key persona.Key) int {
	if !key.Valid() {
		return 0
	}
	return t[key.Index()]
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Map returns the tally keyed by persona, covering all four keys.
func (t Tally) Map() map[persona.Key]int {
	m := make(map[persona.Key]int, persona.Count)
	for _, k := range persona.Keys() {
		m[k] = t[k.Index()]
	}
	return m
}

// View is the full derived state of an answer set.
type View struct {
	Answered   int
	Total      int
	Completion int
	Tally      Tally
	Dominant   persona.Key
	HasResult  bool
}

// CountVotes derives the tally from answers.
func CountVotes(answers Answers) Tally {
	var t Tally
	for _, k := range answers {
		if k.Valid() {
			t[k.Index()]++
		}
	}
	return t
}

// Dominant returns the persona with the highest count. Ties go to the
// persona earliest in display order. It reports false when every count is 0.
func Dominant(t Tally) (persona.Key, bool) {
	type entry struct {
		key   persona.Key
		count int
	}
	entries := make([]entry, 0, persona.Count)
	for _, k := range persona.Keys() {
		entries = append(entries, entry{key: k, count: t[k.Index()]})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return b.count - a.count
	})

	top := entries[0]
	if top.count == 0 {
		return 0, false
	}
	return top.key, true
}

// Completion returns answered/total as a whole percentage, rounding half
// away from zero. A quiz with no questions is 0% complete.
func Completion(answered, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(answered) / float64(total) * 100))
}

// Derive computes the complete View for answers against total questions.
func Derive(answers Answers, total int) View {
	t := CountVotes(answers)
	dom, ok := Dominant(t)
	return View{
		Answered:   len(answers),
		Total:      total,
		Completion: Completion(len(answers), total),
		Tally:      t,
		Dominant:   dom,
		HasResult:  ok,
	}
}
