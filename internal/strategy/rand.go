package strategy

import (
	"math/rand"
	"time"
)

// Rand is the randomness the AI consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded source; seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint: gosec // game AI, not crypto
}

// uniform returns a value in [low, high).
func uniform(rng Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}
