package problemgen

import (
	"time"

	"github.com/matemagica/matemagica/internal/exercise"
)

// Config controls LLMSource.
type Config struct {
	// Validators run in order on every candidate; the first failure
	// drops it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorExercises caps the avoid-list sent with each prompt.
	MaxPriorExercises int

	// Timeout bounds one request, retries included. Zero means none.
	Timeout time.Duration
}

// DefaultConfig returns the standard validator chain for policy.
func DefaultConfig(policy exercise.Policy) Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&MathCheckValidator{},
			&RegimeValidator{Policy: policy},
		},
		MaxTokens:         2048,
		Temperature:       0.9,
		MaxPriorExercises: 20,
		Timeout:           20 * time.Second,
	}
}
