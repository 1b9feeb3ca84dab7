package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ EventRepo = (*eventRepo)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// insert assigns the next global sequence and writes one event row.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	cols := append([]string{"sequence", "timestamp"}, columns...)
	vals := append([]any{seqNum, time.Now().UTC()}, values...)

	query, args := builder().Insert(table).Columns(cols...).Values(vals...).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	var tally any
	if data.Tally != nil {
		b, err := json.Marshal(data.Tally)
		if err != nil {
			return fmt.Errorf("marshal tally: %w", err)
		}
		tally = string(b)
	}

	err := r.insert(ctx, tableSessionEvents,
		[]string{"session_id", "action", "nickname", "total_questions", "answered", "dominant", "tally"},
		[]any{data.SessionID, data.Action, data.Nickname, data.TotalQuestions, data.Answered, data.Dominant, tally},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, tableAnswerEvents,
		[]string{"session_id", "question_id", "persona", "option_label", "overwrote"},
		[]any{data.SessionID, data.QuestionID, data.Persona, data.OptionLabel, data.Overwrote},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, tableLLMEvents,
		[]string{
			"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body",
		},
		[]any{
			data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		},
	)
	if err != nil {
		return fmt.Errorf("save llm request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentResults(ctx context.Context, opts QueryOpts) ([]ResultRecord, error) {
	b := builder()
	sel := b.Select("sequence", "timestamp", "session_id", "nickname", "total_questions", "answered", "dominant", "tally").
		From(b.Table(tableSessionEvents)).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var (
			rec   ResultRecord
			tally sql.NullString
		)
		if err := rows.Scan(&rec.Sequence, &rec.FinishedAt, &rec.SessionID, &rec.Nickname,
			&rec.TotalQuestions, &rec.Answered, &rec.Dominant, &tally); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if tally.Valid && tally.String != "" {
			if err := json.Unmarshal([]byte(tally.String), &rec.Tally); err != nil {
				return nil, fmt.Errorf("decode tally for %s: %w", rec.SessionID, err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	b := builder()
	query, args := b.Select("sequence", "timestamp", "question_id", "persona", "option_label", "overwrote").
		From(b.Table(tableAnswerEvents)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.QuestionID, &a.Persona, &a.OptionLabel, &a.Overwrote); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var llmEventSelect = []string{
	"id", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(s rowScanner) (LLMEventRecord, error) {
	var e LLMEventRecord
	err := s.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	return e, err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	b := builder()
	sel := b.Select(llmEventSelect...).
		From(b.Table(tableLLMEvents)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	b := builder()
	query, args := b.Select(llmEventSelect...).
		From(b.Table(tableLLMEvents)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event %d: %w", id, err)
	}
	return &e, nil
}

func (r *eventRepo) Purge(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback()

	for _, t := range []string{tableAnswerEvents, tableSessionEvents, tableLLMEvents} {
		query, args := builder().Delete(t).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("purge %s: %w", t, err)
		}
	}
	return tx.Commit()
}
