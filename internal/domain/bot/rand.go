package bot

import "math/rand"

// Rand abstracts the randomness used by the posting pipeline so tests can
// force branch selection deterministically.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) IntN(n int) int   { return rand.Intn(n) }

// NewRand returns the default randomness source
func NewRand() Rand {
	return systemRand{}
}
