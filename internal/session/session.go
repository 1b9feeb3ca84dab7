// Package session ties one quiz run to its recorded history.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/logging"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/quiz"
	"github.com/abhisek/beautylens/internal/store"
)

// Recorder is the slice of store.EventRepo a session writes to.
type Recorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Options configures a Session.
type Options struct {
	Nickname      string
	StrictOptions bool
	Logger        *slog.Logger
	Now           func() time.Time
}

// Session is one quiz run. It owns a fresh engine and records every
// applied selection. Recording is best effort: failures are logged and
// the quiz carries on.
type Session struct {
	ID        string
	Nickname  string
	StartedAt time.Time

	engine *quiz.Engine
	rec    Recorder
	logger *slog.Logger
	now    func() time.Time
	ctx    context.Context

	mu       sync.Mutex
	started  bool
	finished *Summary
}

// New creates a session over cat. rec may be nil to skip recording.
func New(ctx context.Context, cat *catalog.Catalog, rec Recorder, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Session{
		ID:        uuid.NewString(),
		Nickname:  opts.Nickname,
		StartedAt: now(),
		rec:       rec,
		logger:    logging.OrDefault(opts.Logger),
		now:       now,
		ctx:       context.WithoutCancel(ctx),
	}

	engineOpts := []quiz.Option{quiz.WithObserver(s.recordAnswer)}
	if opts.StrictOptions {
		engineOpts = append(engineOpts, quiz.WithStrictOptions())
	}
	s.engine = quiz.New(cat, engineOpts...)
	return s
}

// Engine returns the session's quiz engine.
func (s *Session) Engine() *quiz.Engine {
	return s.engine
}

// SetNickname changes the nickname recorded by Start and Finish.
func (s *Session) SetNickname(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Nickname = name
}

// Start records the session start event. Calling it again is a no-op.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	nickname := s.Nickname
	s.mu.Unlock()

	s.logger.Info("quiz started", slog.String("session", s.ID), slog.String("nickname", nickname))
	s.record(ctx, "start", func(ctx context.Context) error {
		return s.rec.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.ID,
			Action:         store.ActionStart,
			Nickname:       nickname,
			TotalQuestions: s.engine.TotalQuestions(),
		})
	})
}

// Finish records the end event with the current result and returns the
// summary. Only the first call records; later calls return the same
// summary.
func (s *Session) Finish(ctx context.Context) *Summary {
	s.mu.Lock()
	if s.finished != nil {
		sum := s.finished
		s.mu.Unlock()
		return sum
	}
	sum := buildSummary(s.engine.Snapshot(), s.now().Sub(s.StartedAt))
	s.finished = sum
	nickname := s.Nickname
	s.mu.Unlock()

	dominant := ""
	if sum.HasResult {
		dominant = sum.Dominant.String()
	}
	s.logger.Info("quiz finished",
		slog.String("session", s.ID),
		slog.Int("answered", sum.Answered),
		slog.Int("total", sum.Total),
		slog.String("dominant", dominant))

	s.record(ctx, "end", func(ctx context.Context) error {
		return s.rec.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.ID,
			Action:         store.ActionEnd,
			Nickname:       nickname,
			TotalQuestions: sum.Total,
			Answered:       sum.Answered,
			Dominant:       dominant,
			Tally:          TallyNames(sum.Tally),
		})
	})
	return sum
}

// Finished reports whether Finish has been called.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished != nil
}

func (s *Session) recordAnswer(c quiz.Change) {
	s.logger.Debug("answer applied",
		slog.String("session", s.ID),
		slog.Int("question", c.QuestionID),
		slog.String("persona", c.Key.String()),
		slog.Bool("overwrote", c.Overwrote()))

	s.record(s.ctx, "answer", func(ctx context.Context) error {
		return s.rec.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:   s.ID,
			QuestionID:  c.QuestionID,
			Persona:     c.Key.String(),
			OptionLabel: c.Option,
			Overwrote:   c.Overwrote(),
		})
	})
}

func (s *Session) record(ctx context.Context, what string, fn func(context.Context) error) {
	if s.rec == nil {
		return
	}
	if err := fn(ctx); err != nil {
		s.logger.Warn("failed to record session event",
			slog.String("session", s.ID),
			slog.String("event", what),
			slog.String("error", err.Error()))
	}
}

// TallyNames converts a tally to a map keyed by persona name.
func TallyNames(t quiz.Tally) map[string]int {
	out := make(map[string]int, persona.Count)
	for k, n := range t.Map() {
		out[k.String()] = n
	}
	return out
}
