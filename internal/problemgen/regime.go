package problemgen

import (
	"fmt"

	"github.com/matemagica/matemagica/internal/exercise"
)

// RegimeValidator enforces the tier's carry/borrow rule and result cap
// as configured in Policy.
type RegimeValidator struct {
	Policy exercise.Policy
}

func (v *RegimeValidator) Name() string { return "regime" }

func (v *RegimeValidator) Validate(c Candidate, req exercise.Request) *ValidationError {
	o, ok := c.operator()
	if !ok {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown operator %q", c.Operator)}
	}
	if !v.Policy.Admits(o, req.Tier, c.First, c.Second) {
		e := exercise.NewExercise(o, req.Tier, c.First, c.Second)
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s breaks the %s rule (regrouping=%t)", e, req.Tier, e.Regrouping()),
		}
	}
	return nil
}
