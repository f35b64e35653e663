package store

import (
	"context"
	"time"
)

// QueryOpts filters event queries. Zero values disable a filter.
type QueryOpts struct {
	Limit   int
	Purpose string
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEvent is one model call as recorded by the llm logging
// decorator.
type LLMRequestEvent struct {
	ID           int64
	Timestamp    time.Time
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

// PurposeUsage aggregates calls per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls per model for cost estimates.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRecorder appends events. It is all the llm package needs.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error
}

// EventRepo is the full event log.
type EventRepo interface {
	EventRecorder

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with id, or nil if there is none.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// PruneLLMEvents deletes events older than before and returns how
	// many were removed.
	PruneLLMEvents(ctx context.Context, before time.Time) (int64, error)
}
