package problemgen

import (
	"fmt"

	"github.com/matemagica/matemagica/internal/exercise"
)

// Validator checks one candidate against the request it answers.
// Implementations must be stateless and safe for concurrent use.
type Validator interface {
	// Name identifies the validator in logs, e.g. "structural".
	Name() string

	Validate(c Candidate, req exercise.Request) *ValidationError
}

// ValidationError describes why a candidate was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
