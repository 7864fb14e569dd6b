package markov

import (
	"math"
	"math/rand"
)

// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// closeness used for tie detection and row renormalisation
const (
	closeAbsTol = 1e-8
	closeRelTol = 1e-5
)

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= closeAbsTol+closeRelTol*math.Abs(b)
}

// Categorical draws an index from weights. Weights that do not sum to ~1 are
// renormalised first. It returns -1 when every weight is zero.
func Categorical(rng Source, weights []float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return -1
	}
	probs := weights
	if !isClose(sum, 1) {
		probs = make([]float64, len(weights))
		for i, w := range weights {
			probs[i] = w / sum
		}
	}

	u := rng.Float64()
	cum := 0.0
	last := -1
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		cum += p
		last = i
		if u < cum {
			return i
		}
	}
	// u fell past the accumulated mass through rounding
	return last
}
