package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/beautylens/internal/logging"
	"github.com/abhisek/beautylens/internal/store"
)

// Recorder persists LLM call events. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// RecordingProvider logs every call and, when a Recorder is set, stores it
// as an event.
type RecordingProvider struct {
	inner    Provider
	provider string
	rec      Recorder
	logger   *slog.Logger
}

// WithRecording wraps p. name is the provider name stored with each event.
func WithRecording(p Provider, name string, rec Recorder, logger *slog.Logger) Provider {
	return &RecordingProvider{inner: p, provider: name, rec: rec, logger: logging.OrDefault(logger)}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	attrs := []any{
		slog.String("provider", data.Provider),
		slog.String("model", data.Model),
		slog.String("purpose", data.Purpose),
		slog.Duration("latency", latency),
	}
	if err != nil {
		r.logger.Warn("llm request failed", append(attrs, slog.String("error", err.Error()))...)
	} else {
		r.logger.Info("llm request", append(attrs,
			slog.Int("input_tokens", data.InputTokens),
			slog.Int("output_tokens", data.OutputTokens))...)
	}

	if r.rec != nil {
		// The call already happened; a recording failure must not fail it.
		if recErr := r.rec.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil {
			r.logger.Warn("failed to record llm request", slog.String("error", recErr.Error()))
		}
	}

	return resp, err
}

func (r *RecordingProvider) ModelID() string { return r.inner.ModelID() }

// describeRequest renders req as readable text for the event log.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
