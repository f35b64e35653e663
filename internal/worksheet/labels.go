package worksheet

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matemagica/matemagica/internal/exercise"
)

var operationLabels = map[exercise.Operation]string{
	exercise.OperationAddition:    "sumas",
	exercise.OperationSubtraction: "restas",
	exercise.OperationMixed:       "sumas y restas",
}

var operatorLabels = map[exercise.Operator]string{
	exercise.OperatorAddition:    "suma",
	exercise.OperatorSubtraction: "resta",
}

var tierLabels = map[exercise.Tier]string{
	exercise.TierEasy:   "fácil",
	exercise.TierMedium: "medio",
	exercise.TierHard:   "difícil",
}

var titleCase = cases.Title(language.Spanish)

// OperationLabel returns the Spanish plural name of op, e.g. "sumas".
func OperationLabel(op exercise.Operation) string {
	if l, ok := operationLabels[op]; ok {
		return l
	}
	return string(op)
}

// TierLabel returns the Spanish name of t, e.g. "fácil".
func TierLabel(t exercise.Tier) string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return string(t)
}

func operatorLabel(o exercise.Operator) string {
	if l, ok := operatorLabels[o]; ok {
		return l
	}
	return string(o)
}
