package reading

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/beautylens/internal/llm"
	"github.com/abhisek/beautylens/internal/logging"
)

// Service generates readings. One request is in flight at a time; a new
// request supersedes the pending one.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger

	mu      sync.Mutex
	gen     int
	pending *Reading
	err     error
	ready   bool
}

// NewService creates a reading service.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, logger: logging.OrDefault(logger)}
}

// Generate produces a reading synchronously.
func (s *Service) Generate(ctx context.Context, in Input) (*Reading, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "reading")

	req := llm.UserPrompt(systemPrompt, buildUserMessage(in))
	req.Schema = Schema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reading generation: %w", err)
	}

	var out Reading
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse reading response: %w", err)
	}
	return &out, nil
}

// Request starts generation in the background. Poll with Consume.
func (s *Service) Request(ctx context.Context, in Input) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending, s.err, s.ready = nil, nil, false
	s.mu.Unlock()

	go func() {
		r, err := s.Generate(ctx, in)
		if err != nil {
			s.logger.Warn("reading failed", slog.String("persona", in.Dominant.Key.String()), slog.String("error", err.Error()))
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending, s.err, s.ready = r, err, true
	}()
}

// Consume returns the finished result of the latest Request. done is
// false while it is still running. A consumed result is cleared.
func (s *Service) Consume() (r *Reading, done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false, nil
	}
	r, err = s.pending, s.err
	s.pending, s.err, s.ready = nil, nil, false
	return r, true, err
}
