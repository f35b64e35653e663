package exercise

import (
	"errors"
	"testing"
)

func TestNewExercise(t *testing.T) {
	tests := []struct {
		name   string
		op     Operator
		a, b   int
		want   [2]int
		result int
		carry  bool
		borrow bool
	}{
		{"addition without carry", OperatorAddition, 23, 34, [2]int{23, 34}, 57, false, false},
		{"addition with carry", OperatorAddition, 58, 27, [2]int{58, 27}, 85, true, false},
		{"subtraction without borrow", OperatorSubtraction, 76, 42, [2]int{76, 42}, 34, false, false},
		{"subtraction with borrow", OperatorSubtraction, 52, 28, [2]int{52, 28}, 24, false, true},
		{"subtraction swaps", OperatorSubtraction, 28, 52, [2]int{52, 28}, 24, false, true},
		{"equal operands", OperatorSubtraction, 44, 44, [2]int{44, 44}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExercise(tt.op, TierHard, tt.a, tt.b)
			if e.Operands != tt.want {
				t.Errorf("operands = %v, want %v", e.Operands, tt.want)
			}
			if e.Result != tt.result {
				t.Errorf("result = %d, want %d", e.Result, tt.result)
			}
			if e.HasCarry() != tt.carry {
				t.Errorf("HasCarry = %t, want %t", e.HasCarry(), tt.carry)
			}
			if e.HasBorrow() != tt.borrow {
				t.Errorf("HasBorrow = %t, want %t", e.HasBorrow(), tt.borrow)
			}
		})
	}
}

func TestExercise_Text(t *testing.T) {
	e := NewExercise(OperatorSubtraction, TierMedium, 52, 28)
	if got := e.String(); got != "52 - 28 = 24" {
		t.Errorf("String() = %q", got)
	}
	if got := e.Prompt(); got != "52 - 28 = ___" {
		t.Errorf("Prompt() = %q", got)
	}
}

func TestParse(t *testing.T) {
	ops := map[string]Operation{
		"addition": OperationAddition,
		"Suma":     OperationAddition,
		"resta":    OperationSubtraction,
		" mixed ":  OperationMixed,
		"mixto":    OperationMixed,
	}
	for in, want := range ops {
		got, err := ParseOperation(in)
		if err != nil || got != want {
			t.Errorf("ParseOperation(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	tiers := map[string]Tier{
		"easy":    TierEasy,
		"fácil":   TierEasy,
		"MEDIO":   TierMedium,
		"difícil": TierHard,
		"hard":    TierHard,
	}
	for in, want := range tiers {
		got, err := ParseTier(in)
		if err != nil || got != want {
			t.Errorf("ParseTier(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if s, err := ParseSource("IA"); err != nil || s != SourceEnhanced {
		t.Errorf("ParseSource(IA) = %q, %v", s, err)
	}

	if _, err := ParseOperation("division"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ParseTier("expert"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ParseSource(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestOperation_Allows(t *testing.T) {
	if !OperationMixed.Allows(OperatorSubtraction) || !OperationMixed.Allows(OperatorAddition) {
		t.Error("mixed should allow both operators")
	}
	if OperationAddition.Allows(OperatorSubtraction) {
		t.Error("addition should not allow subtraction")
	}
	if Operation("x").Allows(OperatorAddition) {
		t.Error("unknown operation should allow nothing")
	}
}
