package llm

import "context"

// Purpose labels recorded with every request event.
const (
	PurposeExerciseGen = "exercise-gen"
	PurposeUnknown     = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so the logging decorator can attribute the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
