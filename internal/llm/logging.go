package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/matemagica/matemagica/internal/store"
)

// LoggingProvider records every request in the event store and emits a
// structured log line for it.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRecorder
	logger   *slog.Logger
}

// WithLogging wraps p, recording events under the provider name. A nil
// events recorder only logs; a nil logger uses slog.Default().
func WithLogging(p Provider, provider string, events store.EventRecorder, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: provider, events: events, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	ev := store.LLMRequestEvent{
		Timestamp:   start.UTC(),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed",
			"purpose", purpose, "model", ev.Model, "latency_ms", ev.LatencyMs, "error", err)
	} else {
		l.logger.Debug("llm request",
			"purpose", purpose, "model", ev.Model, "latency_ms", ev.LatencyMs,
			"input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
	}

	if l.events != nil {
		// A broken event log must not fail exercise generation.
		if logErr := l.events.AppendLLMRequest(ctx, ev); logErr != nil {
			l.logger.Warn("failed to record llm request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders a request for the event log.
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
