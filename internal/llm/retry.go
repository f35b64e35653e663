package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff and
// ±20% jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. MaxAttempts below 1 is treated as 1.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	retriedInvalid := false

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &retriedInvalid) || attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable classifies err. A schema violation is retried once since a
// second sample often conforms; truncation and cancellation never are.
func retryable(err error, retriedInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *retriedInvalid {
			return false
		}
		*retriedInvalid = true
		return true
	}

	// Rate limits, outages and unclassified network errors.
	return true
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)

	return time.Duration(math.Max(wait, 0))
}
