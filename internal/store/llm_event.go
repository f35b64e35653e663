package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const llmEventsTable = "llm_request_events"

var llmEventColumns = []string{
	"id", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo with queries built by ent's SQL builder.
// Timestamps are stored as Unix milliseconds.
type eventRepo struct {
	db *sql.DB
}

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	query, args := sqlite().Insert(llmEventsTable).
		Columns(llmEventColumns[1:]...).
		Values(
			ev.Timestamp.UnixMilli(), ev.Provider, ev.Model, ev.Purpose,
			ev.InputTokens, ev.OutputTokens, ev.LatencyMs, ev.Success,
			ev.ErrorMessage, ev.RequestBody, ev.ResponseBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := sqlite().Select(llmEventColumns...).From(entsql.Table(llmEventsTable))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		ev, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	query, args := sqlite().Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	ev, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ev, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	query, args := sqlite().Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("SUM(1 - success)", "failures"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency_ms"),
	).
		From(entsql.Table(llmEventsTable)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var (
			u   PurposeUsage
			avg float64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.Failures, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.AvgLatencyMs = int64(avg + 0.5)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args := sqlite().Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(entsql.Table(llmEventsTable)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) PruneLLMEvents(ctx context.Context, before time.Time) (int64, error) {
	query, args := sqlite().Delete(llmEventsTable).
		Where(entsql.LT("timestamp", before.UnixMilli())).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune LLM events: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(s scanner) (*LLMRequestEvent, error) {
	var (
		ev LLMRequestEvent
		ts int64
	)
	err := s.Scan(
		&ev.ID, &ts, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.Success,
		&ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	ev.Timestamp = time.UnixMilli(ts).UTC()
	return &ev, nil
}
