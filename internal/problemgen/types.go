package problemgen

import "github.com/matemagica/matemagica/internal/exercise"

// Candidate is one exercise as proposed by the model, before validation.
type Candidate struct {
	First    int    `json:"first"`
	Second   int    `json:"second"`
	Operator string `json:"operator"`
	Result   int    `json:"result"`
}

// batchOutput is the decoded model response.
type batchOutput struct {
	Exercises []Candidate `json:"exercises"`
}

// operator maps the model's operator spelling to an exercise.Operator.
func (c Candidate) operator() (exercise.Operator, bool) {
	switch c.Operator {
	case "+", "addition", "suma":
		return exercise.OperatorAddition, true
	case "-", "−", "subtraction", "resta":
		return exercise.OperatorSubtraction, true
	}
	return "", false
}
