package exercise

// construct builds one exercise for operator o at tier t. It draws up to
// MaxAttempts random pairs; if none satisfies the regime it picks
// uniformly among every admissible pair instead, so it always returns.
func (g *Generator) construct(o Operator, t Tier, regroup bool) Exercise {
	b := g.policy.Bounds(o, t)

	for range g.policy.MaxAttempts {
		x := g.rand.IntBetween(b.First.Min, b.First.Max)
		y := g.rand.IntBetween(b.Second.Min, b.Second.Max)
		if b.admits(o, regroup, x, y) {
			return NewExercise(o, t, x, y)
		}
	}

	x, y := g.pickAdmissible(b, o, regroup)
	return NewExercise(o, t, x, y)
}

// pickAdmissible enumerates the bounds and returns the k-th admissible
// pair for a random k. Policy.Validate guarantees at least one exists.
func (g *Generator) pickAdmissible(b Bounds, o Operator, regroup bool) (int, int) {
	total := 0
	for x := b.First.Min; x <= b.First.Max; x++ {
		for y := b.Second.Min; y <= b.Second.Max; y++ {
			if b.admits(o, regroup, x, y) {
				total++
			}
		}
	}
	if total == 0 {
		// Unreachable with a validated policy.
		panic("exercise: policy admits no operand pair")
	}

	k := g.rand.IntBetween(0, total-1)
	for x := b.First.Min; x <= b.First.Max; x++ {
		for y := b.Second.Min; y <= b.Second.Max; y++ {
			if !b.admits(o, regroup, x, y) {
				continue
			}
			if k == 0 {
				return x, y
			}
			k--
		}
	}
	panic("exercise: admissible pair count changed during enumeration")
}

// operatorFor picks the operator of the next exercise in a batch.
func (g *Generator) operatorFor(op Operation) Operator {
	switch op {
	case OperationSubtraction:
		return OperatorSubtraction
	case OperationMixed:
		if coinFlip(g.rand) {
			return OperatorSubtraction
		}
		return OperatorAddition
	default:
		return OperatorAddition
	}
}

// regroupingFor decides whether the next exercise must carry/borrow.
// Hard batches flip a coin per exercise, giving roughly half of each.
func (g *Generator) regroupingFor(t Tier) bool {
	switch t {
	case TierEasy:
		return false
	case TierMedium:
		return true
	default:
		return coinFlip(g.rand)
	}
}

// local generates n exercises without any external source.
func (g *Generator) local(op Operation, t Tier, n int) []Exercise {
	out := make([]Exercise, 0, n)
	for range n {
		o := g.operatorFor(op)
		out = append(out, g.construct(o, t, g.regroupingFor(t)))
	}
	return out
}
