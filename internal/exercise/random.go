package exercise

import "math/rand/v2"

// RandomSource is the only source of randomness the generator uses.
// Inject a seeded one for reproducible batches.
type RandomSource interface {
	// IntBetween returns a uniformly distributed integer in [min, max].
	IntBetween(min, max int) int
}

type pcgSource struct {
	r *rand.Rand
}

// NewRandomSource returns a deterministic source seeded with seed.
// Not safe for concurrent use.
func NewRandomSource(seed uint64) RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.IntN(max-min+1)
}

type globalSource struct{}

// DefaultRandomSource returns a source backed by the process-wide
// generator. Safe for concurrent use.
func DefaultRandomSource() RandomSource { return globalSource{} }

func (globalSource) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}

// coinFlip returns true with probability one half.
func coinFlip(r RandomSource) bool {
	return r.IntBetween(0, 1) == 1
}

// shuffle permutes xs in place (Fisher–Yates).
func shuffle(r RandomSource, xs []Exercise) {
	for i := len(xs) - 1; i > 0; i-- {
		j := r.IntBetween(0, i)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
