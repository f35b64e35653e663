package problemgen

import (
	"fmt"

	"github.com/matemagica/matemagica/internal/exercise"
)

// StructuralValidator checks the operator and that both operands are
// two-digit numbers in the order the worksheet prints them.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c Candidate, req exercise.Request) *ValidationError {
	o, ok := c.operator()
	if !ok {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown operator %q", c.Operator)}
	}
	if !req.Operation.Allows(o) {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%s not allowed in a %s batch", o, req.Operation)}
	}
	for _, n := range []int{c.First, c.Second} {
		if n < exercise.MinOperand || n > exercise.MaxOperand {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("operand %d is not two-digit", n)}
		}
	}
	if o == exercise.OperatorSubtraction && c.First < c.Second {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%d - %d is negative", c.First, c.Second)}
	}
	return nil
}
