package core

import "math/rand/v2"

// NewRand returns a deterministic PCG-backed generator for the provided seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
