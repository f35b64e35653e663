package problemgen

import (
	"strings"
	"testing"

	"github.com/matemagica/matemagica/internal/exercise"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "regime", Message: "carries"}
	if got, want := err.Error(), `validator "regime": carries`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig(exercise.DefaultPolicy())
	names := []string{"structural", "math-check", "regime"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestValidators(t *testing.T) {
	policy := exercise.DefaultPolicy()
	add := exercise.Request{Operation: exercise.OperationAddition, Tier: exercise.TierEasy, Count: 1}
	sub := exercise.Request{Operation: exercise.OperationSubtraction, Tier: exercise.TierMedium, Count: 1}
	mixedHard := exercise.Request{Operation: exercise.OperationMixed, Tier: exercise.TierHard, Count: 1}

	tests := []struct {
		name string
		v    Validator
		c    Candidate
		req  exercise.Request
		ok   bool
	}{
		{"structural ok", &StructuralValidator{}, Candidate{23, 34, "+", 57}, add, true},
		{"structural word operator", &StructuralValidator{}, Candidate{52, 28, "resta", 24}, sub, true},
		{"structural unknown operator", &StructuralValidator{}, Candidate{23, 34, "*", 782}, add, false},
		{"structural operator not allowed", &StructuralValidator{}, Candidate{52, 28, "-", 24}, add, false},
		{"structural one digit", &StructuralValidator{}, Candidate{9, 34, "+", 43}, add, false},
		{"structural three digit", &StructuralValidator{}, Candidate{100, 34, "+", 134}, add, false},
		{"structural negative subtraction", &StructuralValidator{}, Candidate{28, 52, "-", -24}, sub, false},
		{"math ok", &MathCheckValidator{}, Candidate{52, 28, "-", 24}, sub, true},
		{"math wrong", &MathCheckValidator{}, Candidate{52, 28, "-", 34}, sub, false},
		{"regime easy ok", &RegimeValidator{Policy: policy}, Candidate{23, 34, "+", 57}, add, true},
		{"regime easy carry", &RegimeValidator{Policy: policy}, Candidate{27, 35, "+", 62}, add, false},
		{"regime medium borrow", &RegimeValidator{Policy: policy}, Candidate{52, 28, "-", 24}, sub, true},
		{"regime medium no borrow", &RegimeValidator{Policy: policy}, Candidate{58, 23, "-", 35}, sub, false},
		{"regime hard either", &RegimeValidator{Policy: policy}, Candidate{58, 23, "-", 35}, mixedHard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate(tt.c, tt.req)
			if (err == nil) != tt.ok {
				t.Fatalf("Validate(%+v) = %v, want ok=%t", tt.c, err, tt.ok)
			}
			if err != nil && err.Validator != tt.v.Name() {
				t.Fatalf("error names %q, want %q", err.Validator, tt.v.Name())
			}
		})
	}
}

func TestBuildAvoidList(t *testing.T) {
	if got := buildAvoidList(nil, 5); got != "Ninguno" {
		t.Fatalf("empty list = %q", got)
	}
	got := buildAvoidList([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Fatalf("capped list = %q", got)
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(exercise.Request{
		Operation: exercise.OperationMixed, Tier: exercise.TierHard, Count: 10,
	}, []string{"23 + 34 = 57"}, DefaultConfig(exercise.DefaultPolicy()))

	for _, want := range []string{"Genera 10 ejercicios", "sumas y restas", "difícil", "1. 23 + 34 = 57"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}
