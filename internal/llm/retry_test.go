package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

const (
	twoSubtractions = `{"exercises":[{"first":52,"second":28,"operator":"-","result":24},{"first":71,"second":46,"operator":"-","result":25}]}`
	// 105 breaks the operand maximum of the exercise-batch schema.
	threeDigitSum = `{"exercises":[{"first":105,"second":12,"operator":"+","result":117}]}`
	// "x" is not an allowed operator.
	badOperator = `{"exercises":[{"first":40,"second":12,"operator":"x","result":0}]}`
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

// schemaScript replies with payloads in order and checks each one
// against the request schema the way the real backends do.
type schemaScript struct {
	payloads []string
	errs     []error
	calls    int
	onCall   func(n int)
}

func (s *schemaScript) Generate(_ context.Context, req Request) (*Response, error) {
	n := s.calls
	s.calls++
	if s.onCall != nil {
		s.onCall(n)
	}
	if n < len(s.errs) && s.errs[n] != nil {
		return nil, s.errs[n]
	}
	raw := json.RawMessage(s.payloads[n])
	if err := validateResponse(req.Schema, raw); err != nil {
		return nil, err
	}
	return &Response{Content: raw, Model: "scripted", StopReason: "end"}, nil
}

func (s *schemaScript) ModelID() string { return "scripted" }

func exerciseRequest() Request {
	return Request{
		System:   "Eres un tutor de matemáticas.",
		Messages: []Message{{Role: RoleUser, Content: "Genera 2 restas con préstamo."}},
		Schema:   exerciseBatchSchema(),
	}
}

func TestRetry_ExercisePayloads(t *testing.T) {
	unavailable := &ErrProviderUnavailable{Err: errors.New("503")}

	tests := []struct {
		name      string
		payloads  []string
		errs      []error
		attempts  int
		wantCalls int
		wantErr   any
	}{
		{
			name:      "conforming batch on first attempt",
			payloads:  []string{twoSubtractions},
			attempts:  3,
			wantCalls: 1,
		},
		{
			name:      "outage then conforming batch",
			payloads:  []string{"", twoSubtractions},
			errs:      []error{unavailable},
			attempts:  3,
			wantCalls: 2,
		},
		{
			name:      "schema violation resampled once",
			payloads:  []string{threeDigitSum, twoSubtractions},
			attempts:  3,
			wantCalls: 2,
		},
		{
			name:      "second schema violation gives up",
			payloads:  []string{threeDigitSum, badOperator, twoSubtractions},
			attempts:  5,
			wantCalls: 2,
			wantErr:   new(*ErrInvalidResponse),
		},
		{
			name:      "truncated batch is not retried",
			payloads:  []string{""},
			errs:      []error{&ErrMaxTokensExceeded{Content: json.RawMessage(`{"exercises":[{"first":52`)}},
			attempts:  3,
			wantCalls: 1,
			wantErr:   new(*ErrMaxTokensExceeded),
		},
		{
			name:      "outage outlasts attempts",
			payloads:  []string{"", "", ""},
			errs:      []error{unavailable, unavailable, unavailable},
			attempts:  3,
			wantCalls: 3,
			wantErr:   new(*ErrProviderUnavailable),
		},
		{
			name:      "zero attempts still calls once",
			payloads:  []string{twoSubtractions},
			attempts:  0,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := &schemaScript{payloads: tt.payloads, errs: tt.errs}
			resp, err := WithRetry(script, fastRetry(tt.attempts)).Generate(context.Background(), exerciseRequest())

			if script.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", script.calls, tt.wantCalls)
			}
			if tt.wantErr != nil {
				if err == nil || !errors.As(err, tt.wantErr) {
					t.Fatalf("err = %v (%T), want %T", err, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var out struct {
				Exercises []struct{ First, Second, Result int } `json:"exercises"`
			}
			if err := json.Unmarshal(resp.Content, &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(out.Exercises) != 2 || out.Exercises[0].First != 52 {
				t.Errorf("unexpected batch: %s", resp.Content)
			}
		})
	}
}

func TestRetry_CancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	script := &schemaScript{
		payloads: []string{"", twoSubtractions},
		errs:     []error{&ErrProviderUnavailable{Err: errors.New("503")}},
		onCall:   func(int) { cancel() },
	}
	cfg := RetryConfig{MaxAttempts: 3, InitialWait: time.Minute, MaxWait: time.Minute, Multiplier: 1}

	start := time.Now()
	_, err := WithRetry(script, cfg).Generate(ctx, exerciseRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if script.calls != 1 {
		t.Errorf("calls = %d, want 1", script.calls)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation waited out the backoff: %s", elapsed)
	}
}

func TestRetry_CancellationErrorsAreFinal(t *testing.T) {
	for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
		script := &schemaScript{
			payloads: []string{"", twoSubtractions},
			errs:     []error{&ErrProviderUnavailable{Err: cause}},
		}
		_, err := WithRetry(script, fastRetry(3)).Generate(context.Background(), exerciseRequest())
		if !errors.Is(err, cause) {
			t.Errorf("%v: err = %v", cause, err)
		}
		if script.calls != 1 {
			t.Errorf("%v: calls = %d, want 1", cause, script.calls)
		}
	}
}

func TestRetry_RateLimitWaitsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: fastRetry(3)}
	rl := &ErrRateLimit{RetryAfter: 42 * time.Millisecond, Err: errors.New("429")}
	if got := r.backoff(0, rl); got != 42*time.Millisecond {
		t.Errorf("backoff = %s, want the server's Retry-After", got)
	}
}

func TestRetry_BackoffGrowsWithinJitter(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}
	unavailable := &ErrProviderUnavailable{}

	for attempt, base := range []time.Duration{100, 200, 400, 800, 1000, 1000} {
		base *= time.Millisecond
		lo, hi := base*8/10, base*12/10
		for range 20 {
			if got := r.backoff(attempt, unavailable); got < lo || got > hi {
				t.Fatalf("attempt %d: backoff %s outside [%s, %s]", attempt, got, lo, hi)
			}
		}
	}
}

// Every attempt goes through the logging decorator, so a resampled
// batch leaves one failed and one successful event.
func TestRetry_EachAttemptIsRecorded(t *testing.T) {
	script := &schemaScript{payloads: []string{threeDigitSum, twoSubtractions}}
	rec := &recordedEvents{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := WithRetry(WithLogging(script, ProviderMock, rec, logger), fastRetry(3))

	ctx := WithPurpose(context.Background(), PurposeExerciseGen)
	if _, err := p.Generate(ctx, exerciseRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	if rec.events[0].Success || !rec.events[1].Success {
		t.Errorf("want failed then successful attempt, got %+v", rec.events)
	}
	for _, ev := range rec.events {
		if ev.Purpose != PurposeExerciseGen {
			t.Errorf("purpose = %q, want %q", ev.Purpose, PurposeExerciseGen)
		}
	}
	if rec.events[1].ResponseBody != twoSubtractions {
		t.Errorf("response body = %q", rec.events[1].ResponseBody)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if got := WithRetry(&schemaScript{}, fastRetry(1)).ModelID(); got != "scripted" {
		t.Errorf("ModelID = %q, want %q", got, "scripted")
	}
}
