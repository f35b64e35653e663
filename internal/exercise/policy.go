package exercise

import "fmt"

const (
	// MinOperand and MaxOperand bound every locally generated operand.
	MinOperand = 10
	MaxOperand = 99

	defaultMaxAttempts = 50
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min" mapstructure:"min"`
	Max int `json:"max" mapstructure:"max"`
}

// Bounds are the sampling ranges for one operator at one tier.
type Bounds struct {
	First  Range `json:"first" mapstructure:"first"`
	Second Range `json:"second" mapstructure:"second"`

	// MaxResult caps the sum of an addition. Zero means no cap.
	MaxResult int `json:"max_result" mapstructure:"max_result"`
}

// Policy holds the tunable numeric ranges per operator and tier.
// The dashboards each used slightly different bounds, so none of them
// are hard-coded outside DefaultPolicy.
type Policy struct {
	Addition    map[Tier]Bounds `json:"addition" mapstructure:"addition"`
	Subtraction map[Tier]Bounds `json:"subtraction" mapstructure:"subtraction"`

	// MaxAttempts is the number of random draws tried before falling
	// back to enumerating admissible pairs.
	MaxAttempts int `json:"max_attempts" mapstructure:"max_attempts"`
}

var fullRange = Range{Min: MinOperand, Max: MaxOperand}

// DefaultPolicy returns the normalized policy: the full two-digit range
// everywhere, except easy addition which keeps the dashboards' tuning of
// a first operand up to 54 and sums that stay two-digit.
func DefaultPolicy() Policy {
	full := Bounds{First: fullRange, Second: fullRange}
	return Policy{
		Addition: map[Tier]Bounds{
			TierEasy:   {First: Range{Min: 10, Max: 54}, Second: fullRange, MaxResult: 99},
			TierMedium: full,
			TierHard:   full,
		},
		Subtraction: map[Tier]Bounds{
			TierEasy:   full,
			TierMedium: full,
			TierHard:   full,
		},
		MaxAttempts: defaultMaxAttempts,
	}
}

// Bounds returns the configured bounds for operator o at tier t.
func (p Policy) Bounds(o Operator, t Tier) Bounds {
	if o == OperatorSubtraction {
		return p.Subtraction[t]
	}
	return p.Addition[t]
}

// Validate checks that every range lies in [MinOperand, MaxOperand] and
// that each tier's regime has at least one admissible operand pair, so
// local construction can always terminate.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidArgument, p.MaxAttempts)
	}
	for _, o := range []Operator{OperatorAddition, OperatorSubtraction} {
		for _, t := range AllTiers() {
			b, ok := p.boundsFor(o, t)
			if !ok {
				return fmt.Errorf("%w: no bounds for %s/%s", ErrInvalidArgument, o, t)
			}
			if err := b.validate(); err != nil {
				return fmt.Errorf("%s/%s: %w", o, t, err)
			}
			for _, regroup := range regimesFor(t) {
				if !b.feasible(o, regroup) {
					return fmt.Errorf("%w: %s/%s bounds admit no exercise with regrouping=%t",
						ErrInvalidArgument, o, t, regroup)
				}
			}
		}
	}
	return nil
}

// Admits reports whether a and b satisfy tier t's carry/borrow rule and
// the result cap for o. Sampling ranges are not checked; they steer local
// generation only.
func (p Policy) Admits(o Operator, t Tier, a, b int) bool {
	bounds, ok := p.boundsFor(o, t)
	if !ok {
		return false
	}
	for _, regroup := range regimesFor(t) {
		if bounds.admits(o, regroup, a, b) {
			return true
		}
	}
	return false
}

func (p Policy) boundsFor(o Operator, t Tier) (Bounds, bool) {
	m := p.Addition
	if o == OperatorSubtraction {
		m = p.Subtraction
	}
	b, ok := m[t]
	return b, ok
}

func (b Bounds) validate() error {
	for name, r := range map[string]Range{"first": b.First, "second": b.Second} {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s range [%d, %d] is inverted", ErrInvalidArgument, name, r.Min, r.Max)
		}
		if r.Min < MinOperand || r.Max > MaxOperand {
			return fmt.Errorf("%w: %s range [%d, %d] leaves [%d, %d]",
				ErrInvalidArgument, name, r.Min, r.Max, MinOperand, MaxOperand)
		}
	}
	if b.MaxResult < 0 {
		return fmt.Errorf("%w: negative max result %d", ErrInvalidArgument, b.MaxResult)
	}
	return nil
}

// regimesFor lists the regrouping regimes a tier can ask for.
func regimesFor(t Tier) []bool {
	switch t {
	case TierEasy:
		return []bool{false}
	case TierMedium:
		return []bool{true}
	default:
		return []bool{false, true}
	}
}

// admits reports whether the pair (x, y), as drawn, yields an exercise
// satisfying the regime and the result cap. Subtraction pairs are
// ordered first.
func (b Bounds) admits(o Operator, regroup bool, x, y int) bool {
	if o == OperatorSubtraction {
		if x < y {
			x, y = y, x
		}
		return unitsBorrow(x, y) == regroup
	}
	if b.MaxResult > 0 && x+y > b.MaxResult {
		return false
	}
	return unitsCarry(x, y) == regroup
}

func (b Bounds) feasible(o Operator, regroup bool) bool {
	for x := b.First.Min; x <= b.First.Max; x++ {
		for y := b.Second.Min; y <= b.Second.Max; y++ {
			if b.admits(o, regroup, x, y) {
				return true
			}
		}
	}
	return false
}
