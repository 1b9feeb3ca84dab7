package session

import (
	"time"

	"github.com/abhisek/beautylens/internal/quiz"
)

// Summary is the outcome of a finished run, shown on the result screen.
type Summary struct {
	quiz.View
	Duration time.Duration
}

func buildSummary(v quiz.View, elapsed time.Duration) *Summary {
	return &Summary{View: v, Duration: elapsed.Round(time.Second)}
}
