// Package rng wraps the seeded random source shared by every system of a
// scene.
package rng

import "math/rand/v2"

// Source is stored as a singleton so systems draw from one stream and a
// seed reproduces a whole run.
type Source struct {
	R *rand.Rand
}

// New returns a PCG-backed source.
func New(seed uint64) Source {
	return Source{R: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform returns a float in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.R.Float64()*(hi-lo)
}

// Between returns an int in [lo, hi], both ends included.
func (s *Source) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.R.IntN(hi-lo+1)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.R.Float64() < p
}
