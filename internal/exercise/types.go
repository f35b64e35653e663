package exercise

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operator is the arithmetic operator of a single exercise.
type Operator string

const (
	OperatorAddition    Operator = "addition"
	OperatorSubtraction Operator = "subtraction"
)

// Symbol returns the operator sign as printed on a worksheet.
func (o Operator) Symbol() string {
	if o == OperatorSubtraction {
		return "-"
	}
	return "+"
}

// Operation is the kind of batch a caller asks for.
type Operation string

const (
	OperationAddition    Operation = "addition"
	OperationSubtraction Operation = "subtraction"

	// OperationMixed lets every exercise pick its own operator.
	OperationMixed Operation = "mixed"
)

// Allows reports whether an exercise with operator o belongs in a batch
// of this operation.
func (op Operation) Allows(o Operator) bool {
	switch op {
	case OperationAddition:
		return o == OperatorAddition
	case OperationSubtraction:
		return o == OperatorSubtraction
	case OperationMixed:
		return o == OperatorAddition || o == OperatorSubtraction
	default:
		return false
	}
}

// Tier is a difficulty level controlling the carry/borrow regime.
type Tier string

const (
	TierEasy   Tier = "easy"   // no carry / no borrow
	TierMedium Tier = "medium" // forced carry / forced borrow
	TierHard   Tier = "hard"   // mix of both
)

// AllTiers returns the tiers in ascending difficulty.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// Source selects where exercises come from.
type Source string

const (
	SourceLocal    Source = "local"
	SourceEnhanced Source = "enhanced"
)

// Exercise is one generated two-digit problem. It is a value object:
// nothing mutates it after construction.
type Exercise struct {
	Operands [2]int   `json:"operands"`
	Operator Operator `json:"operator"`
	Tier     Tier     `json:"tier"`
	Result   int      `json:"result"`

	// Sequence is the 1-based position within the batch.
	Sequence int `json:"sequence"`
}

// NewExercise builds an exercise from two operands, swapping them for
// subtraction so the result is never negative.
func NewExercise(o Operator, tier Tier, a, b int) Exercise {
	if o == OperatorSubtraction && a < b {
		a, b = b, a
	}
	e := Exercise{Operands: [2]int{a, b}, Operator: o, Tier: tier}
	e.Result = compute(o, a, b)
	return e
}

func compute(o Operator, a, b int) int {
	if o == OperatorSubtraction {
		return a - b
	}
	return a + b
}

// HasCarry reports whether the units column of an addition regroups.
func (e Exercise) HasCarry() bool {
	return e.Operator == OperatorAddition && unitsCarry(e.Operands[0], e.Operands[1])
}

// HasBorrow reports whether the units column of a subtraction regroups.
func (e Exercise) HasBorrow() bool {
	return e.Operator == OperatorSubtraction && unitsBorrow(e.Operands[0], e.Operands[1])
}

// Regrouping reports whether the exercise needs a carry or a borrow.
func (e Exercise) Regrouping() bool {
	return e.HasCarry() || e.HasBorrow()
}

// String renders the solved exercise, e.g. "23 + 34 = 57".
func (e Exercise) String() string {
	return fmt.Sprintf("%d %s %d = %d", e.Operands[0], e.Operator.Symbol(), e.Operands[1], e.Result)
}

// Prompt renders the exercise with a blank for the answer.
func (e Exercise) Prompt() string {
	return fmt.Sprintf("%d %s %d = ___", e.Operands[0], e.Operator.Symbol(), e.Operands[1])
}

func unitsCarry(a, b int) bool  { return a%10+b%10 >= 10 }
func unitsBorrow(a, b int) bool { return a%10 < b%10 }

// Batch is the ordered result of one generation request.
type Batch struct {
	ID        uuid.UUID  `json:"id"`
	Operation Operation  `json:"operation"`
	Tier      Tier       `json:"tier"`
	CreatedAt time.Time  `json:"created_at"`
	Exercises []Exercise `json:"exercises"`
}

// Len returns the number of exercises in the batch.
func (b *Batch) Len() int { return len(b.Exercises) }

// ParseOperation accepts the English names and the Spanish ones used by
// the dashboards ("suma", "resta", "mixto").
func ParseOperation(s string) (Operation, error) {
	switch normalize(s) {
	case "addition", "add", "suma", "sumas":
		return OperationAddition, nil
	case "subtraction", "sub", "resta", "restas":
		return OperationSubtraction, nil
	case "mixed", "mix", "mixto", "mixta", "mixtas":
		return OperationMixed, nil
	}
	return "", fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, s)
}

// ParseTier accepts "easy"/"medium"/"hard" and their Spanish forms.
func ParseTier(s string) (Tier, error) {
	switch normalize(s) {
	case "easy", "facil":
		return TierEasy, nil
	case "medium", "medio", "media":
		return TierMedium, nil
	case "hard", "dificil":
		return TierHard, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty tier %q", ErrInvalidArgument, s)
}

// ParseSource accepts "local" or "enhanced" ("ia" and "ai" are aliases
// for the latter).
func ParseSource(s string) (Source, error) {
	switch normalize(s) {
	case "local":
		return SourceLocal, nil
	case "enhanced", "ai", "ia":
		return SourceEnhanced, nil
	}
	return "", fmt.Errorf("%w: unknown source %q", ErrInvalidArgument, s)
}

var accentFolder = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

func normalize(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}

func validOperation(op Operation) bool {
	return op == OperationAddition || op == OperationSubtraction || op == OperationMixed
}

func validTier(t Tier) bool {
	return t == TierEasy || t == TierMedium || t == TierHard
}

func validSource(s Source) bool {
	return s == SourceLocal || s == SourceEnhanced
}
