package store

import (
	"context"
	"time"
)

// Session lifecycle actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SessionEventData captures a quiz run starting or ending.
type SessionEventData struct {
	SessionID      string
	Action         string
	Nickname       string
	TotalQuestions int
	Answered       int            // end only
	Dominant       string         // end only; empty when nothing was answered
	Tally          map[string]int // end only
}

// AnswerEventData captures one applied selection.
type AnswerEventData struct {
	SessionID   string
	QuestionID  int
	Persona     string
	OptionLabel string
	Overwrote   bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// ResultRecord is a finished quiz run as read back from the store.
type ResultRecord struct {
	Sequence       int64
	SessionID      string
	Nickname       string
	FinishedAt     time.Time
	TotalQuestions int
	Answered       int
	Dominant       string
	Tally          map[string]int
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence    int64
	Timestamp   time.Time
	QuestionID  int
	Persona     string
	OptionLabel string
	Overwrote   bool
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID           int
	Timestamp    time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to quiz events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentResults returns finished runs, newest first.
	RecentResults(ctx context.Context, opts QueryOpts) ([]ResultRecord, error)

	// SessionAnswers returns the answer events of one run in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns the event with the given id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// Purge deletes all recorded events.
	Purge(ctx context.Context) error
}
