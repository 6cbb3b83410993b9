package cvrp

import "math/rand"

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// newRNG returns a seeded PRNG when seed is non-nil, or a process-global
// nondeterministic source otherwise.
func newRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}
