package exercise

import (
	"errors"
	"testing"
)

func TestDefaultPolicy_Valid(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy should validate: %v", err)
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{"zero attempts", func(p *Policy) { p.MaxAttempts = 0 }},
		{"missing tier", func(p *Policy) { delete(p.Subtraction, TierHard) }},
		{"inverted range", func(p *Policy) {
			b := p.Addition[TierMedium]
			b.First = Range{Min: 60, Max: 20}
			p.Addition[TierMedium] = b
		}},
		{"below two digits", func(p *Policy) {
			b := p.Subtraction[TierEasy]
			b.Second = Range{Min: 1, Max: 99}
			p.Subtraction[TierEasy] = b
		}},
		{"above two digits", func(p *Policy) {
			b := p.Addition[TierHard]
			b.First = Range{Min: 10, Max: 120}
			p.Addition[TierHard] = b
		}},
		{"carry impossible", func(p *Policy) {
			// Units digit 0 on the first operand and at most 9 on the
			// second can never reach 10.
			p.Addition[TierMedium] = Bounds{First: Range{Min: 10, Max: 10}, Second: Range{Min: 10, Max: 99}}
		}},
		{"hard needs both regimes", func(p *Policy) {
			p.Subtraction[TierHard] = Bounds{First: Range{Min: 50, Max: 50}, Second: Range{Min: 10, Max: 10}}
		}},
		{"cap too tight", func(p *Policy) {
			b := p.Addition[TierEasy]
			b.MaxResult = 15
			p.Addition[TierEasy] = b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if _, err := New(p); err == nil {
				t.Fatal("New should reject an invalid policy")
			}
		})
	}
}

func TestPolicy_NarrowRangeStillTerminates(t *testing.T) {
	p := DefaultPolicy()
	// Exactly one carry pair exists: 19 + 11.
	p.Addition[TierMedium] = Bounds{First: Range{Min: 19, Max: 19}, Second: Range{Min: 10, Max: 11}}
	p.MaxAttempts = 1

	g, err := New(p, WithRandomSource(minSource{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for range 5 {
		e := g.construct(OperatorAddition, TierMedium, true)
		if e.Operands != [2]int{19, 11} {
			t.Fatalf("expected 19 + 11, got %s", e)
		}
	}
}

func TestPolicyAdmits(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name string
		o    Operator
		tier Tier
		a, b int
		want bool
	}{
		{"easy addition without carry", OperatorAddition, TierEasy, 23, 34, true},
		{"easy addition with carry", OperatorAddition, TierEasy, 27, 35, false},
		{"easy addition over the cap", OperatorAddition, TierEasy, 54, 72, false},
		{"medium addition with carry", OperatorAddition, TierMedium, 27, 35, true},
		{"medium addition without carry", OperatorAddition, TierMedium, 23, 34, false},
		{"hard addition either way", OperatorAddition, TierHard, 23, 34, true},
		{"easy subtraction without borrow", OperatorSubtraction, TierEasy, 58, 23, true},
		{"medium subtraction with borrow", OperatorSubtraction, TierMedium, 52, 28, true},
		{"medium subtraction without borrow", OperatorSubtraction, TierMedium, 58, 23, false},
		{"unknown tier", OperatorAddition, Tier("expert"), 23, 34, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Admits(tt.o, tt.tier, tt.a, tt.b); got != tt.want {
				t.Fatalf("Admits(%s, %s, %d, %d) = %t, want %t", tt.o, tt.tier, tt.a, tt.b, got, tt.want)
			}
		})
	}
}
