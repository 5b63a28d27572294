// Package prng provides the single seeded generator referenced in
// spec.md section 9 ("Randomisation"). Session-randomised parameters
// (in this core only the PTU shot-to-shot efficiency) are drawn once at
// construction from a host-provided seed and
// then held constant for the session, which preserves determinism (P9)
// while giving between-session variety.
package prng

import "math/rand"

// Source is a thin wrapper so callers don't reach for math/rand directly
// and accidentally share global state across simulator instances.
type Source struct {
	r *rand.Rand
}

// New returns a PRNG seeded deterministically from seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Uniform returns a value in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}
