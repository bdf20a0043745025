// Package rng provides the random-source abstraction consumed by code that
// randgen generates.
//
// A Source is anything that yields a stream of uint64s. The interface is
// deliberately identical to math/rand/v2.Source, so any standard library
// generator (PCG, ChaCha8, a *rand.Rand) can be handed straight to a
// generated Random function:
//
//	order := RandomOrder(rand.NewPCG(1, 2))
//
// Generated code never inspects or mutates anything besides the source it is
// given, so a deterministic source always reproduces the same value. A Source
// is not safe for concurrent use; give each goroutine its own.
package rng

import (
	"math/bits"
	"math/rand/v2"
)

// Source yields raw random draws. It matches math/rand/v2.Source.
type Source interface {
	Uint64() uint64
}

// Seeded returns a deterministic Source seeded from a single value.
// Two Seeded sources with the same seed produce identical streams.
func Seeded(seed uint64) Source {
	return rand.NewPCG(seed, seed)
}

// Uint64n returns a uniformly distributed integer in [0, n).
//
// It uses masked rejection sampling: draw just enough low bits to cover n,
// retry while the draw lands in [n, mask]. Unlike a modulus reduction this is
// exactly uniform for every source, and a raw draw that is already below n
// maps to itself.
//
// Panics if n is 0.
func Uint64n(r Source, n uint64) uint64 {
	if n == 0 {
		panic("rng: Uint64n called with n == 0")
	}
	if n == 1 {
		return 0
	}
	mask := ^uint64(0) >> bits.LeadingZeros64(n-1)
	for {
		if v := r.Uint64() & mask; v < n {
			return v
		}
	}
}

// IntN is Uint64n for int-shaped counts. Panics if n <= 0.
func IntN(r Source, n int) int {
	if n <= 0 {
		panic("rng: IntN called with n <= 0")
	}
	return int(Uint64n(r, uint64(n)))
}
