package problemgen

import (
	"fmt"

	"github.com/matemagica/matemagica/internal/exercise"
)

// MathCheckValidator recomputes the result and rejects candidates whose
// stated result is wrong. A model that miscounts the sum is likely to
// have ignored the carry rule too.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(c Candidate, _ exercise.Request) *ValidationError {
	o, ok := c.operator()
	if !ok {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown operator %q", c.Operator)}
	}
	want := c.First + c.Second
	if o == exercise.OperatorSubtraction {
		want = c.First - c.Second
	}
	if c.Result != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %d but model claimed %d", want, c.Result),
		}
	}
	return nil
}
