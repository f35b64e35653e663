package exercise

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Request describes what is asked of an EnhancedSource.
type Request struct {
	Operation Operation
	Tier      Tier
	Count     int
}

// EnhancedSource is an external, higher-quality exercise generator
// (an LLM in practice) that may be unavailable.
type EnhancedSource interface {
	// RequestExercises returns between 0 and req.Count exercises. Any
	// error is treated exactly like an empty result.
	RequestExercises(ctx context.Context, req Request) ([]Exercise, error)
}

// Generator produces exercise batches. It holds no mutable state of its
// own; it is safe for concurrent use when its RandomSource is.
type Generator struct {
	policy   Policy
	rand     RandomSource
	seeded   bool
	enhanced EnhancedSource
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRandomSource injects the source of randomness.
func WithRandomSource(r RandomSource) Option {
	return func(g *Generator) { g.rand, g.seeded = r, true }
}

// WithEnhancedSource sets the source used for SourceEnhanced requests.
func WithEnhancedSource(s EnhancedSource) Option {
	return func(g *Generator) { g.enhanced = s }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithClock overrides the batch timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New validates policy and returns a Generator.
func New(policy Policy, opts ...Option) (*Generator, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("exercise policy: %w", err)
	}
	g := &Generator{
		policy: policy,
		rand:   DefaultRandomSource(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateBatch returns exactly count exercises for the given operation
// and tier, numbered 1..count.
//
// With SourceEnhanced the enhanced source is asked first; its items that
// are well formed and fit the tier lead the batch in the order returned,
// and the remainder is generated locally and shuffled. Failures of the enhanced source are
// never returned. The only error is ErrInvalidArgument.
func (g *Generator) GenerateBatch(ctx context.Context, op Operation, tier Tier, count int, source Source) (*Batch, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, count)
	}
	if !validOperation(op) {
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, op)
	}
	if !validTier(tier) {
		return nil, fmt.Errorf("%w: unknown difficulty tier %q", ErrInvalidArgument, tier)
	}
	if !validSource(source) {
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidArgument, source)
	}

	var exercises []Exercise
	if source == SourceEnhanced {
		enhanced, err := g.fromEnhanced(ctx, op, tier, count)
		if err != nil {
			g.logger.Warn("enhanced generation unavailable, generating locally",
				"operation", op, "tier", tier, "count", count, "error", err)
		}
		exercises = enhanced
	}

	if missing := count - len(exercises); missing > 0 {
		fill := g.local(op, tier, missing)
		if source == SourceEnhanced {
			shuffle(g.rand, fill)
			if len(exercises) > 0 {
				g.logger.Info("topped up enhanced batch locally",
					"operation", op, "tier", tier, "enhanced", len(exercises), "local", missing)
			}
		}
		exercises = append(exercises, fill...)
	}

	for i := range exercises {
		exercises[i].Sequence = i + 1
	}

	return &Batch{
		ID:        g.newID(),
		Operation: op,
		Tier:      tier,
		CreatedAt: g.now(),
		Exercises: exercises,
	}, nil
}

// fromEnhanced asks the enhanced source for count exercises and keeps
// the well-formed ones the policy admits for tier, at most count. The
// rest are discarded, never repaired.
func (g *Generator) fromEnhanced(ctx context.Context, op Operation, tier Tier, count int) ([]Exercise, error) {
	if g.enhanced == nil {
		return nil, errEnhancedUnavailable
	}

	items, err := g.enhanced.RequestExercises(ctx, Request{Operation: op, Tier: tier, Count: count})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errEnhancedUnavailable, err)
	}

	out := make([]Exercise, 0, min(len(items), count))
	discarded := 0
	for _, it := range items {
		if len(out) == count {
			break
		}
		if !wellFormed(op, it) || !g.policy.Admits(it.Operator, tier, it.Operands[0], it.Operands[1]) {
			discarded++
			continue
		}
		out = append(out, NewExercise(it.Operator, tier, it.Operands[0], it.Operands[1]))
	}
	if discarded > 0 {
		g.logger.Debug("discarded malformed enhanced exercises", "discarded", discarded, "kept", len(out))
	}
	return out, nil
}

// wellFormed is the minimum an externally produced exercise must satisfy:
// two-digit operands, an operator the batch allows and, for subtraction,
// a first operand no smaller than the second. The stated result is
// ignored and recomputed.
func wellFormed(op Operation, e Exercise) bool {
	for _, n := range e.Operands {
		if n < MinOperand || n > MaxOperand {
			return false
		}
	}
	if !op.Allows(e.Operator) {
		return false
	}
	if e.Operator == OperatorSubtraction && e.Operands[0] < e.Operands[1] {
		return false
	}
	return true
}

// newID returns the batch ID. With an injected random source it is drawn
// from that source after the exercises, so a seeded generator repeats
// whole batches, IDs included.
func (g *Generator) newID() uuid.UUID {
	if g.seeded {
		if id, err := uuid.NewRandomFromReader(sourceReader{g.rand}); err == nil {
			return id
		}
	}
	return uuid.New()
}

// sourceReader adapts a RandomSource to io.Reader.
type sourceReader struct{ r RandomSource }

func (s sourceReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(s.r.IntBetween(0, 255))
	}
	return len(p), nil
}
