package rng

// PtrOf returns nil with probability 1/2, otherwise a pointer to a freshly
// generated value. The nil arm consumes exactly one draw and nothing more,
// which is what gives recursive pointer shapes a reachable base case.
func PtrOf[T any](r Source, gen func(Source) T) *T {
	if !Bool(r) {
		return nil
	}
	v := gen(r)
	return &v
}

// SliceOf generates a slice of length [0, MaxSeqLen], filling it with gen.
func SliceOf[T any](r Source, gen func(Source) T) []T {
	n := IntN(r, MaxSeqLen+1)
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	for i := range out {
		out[i] = gen(r)
	}
	return out
}

// MapOf generates a map with [0, MaxSeqLen] entries. The actual size may be
// smaller when duplicate keys are drawn.
func MapOf[K comparable, V any](r Source, genK func(Source) K, genV func(Source) V) map[K]V {
	n := IntN(r, MaxSeqLen+1)
	if n == 0 {
		return nil
	}
	out := make(map[K]V, n)
	for i := 0; i < n; i++ {
		out[genK(r)] = genV(r)
	}
	return out
}

// OneOf returns one of vals, chosen uniformly with a single index draw.
// Panics if vals is empty.
func OneOf[T any](r Source, vals ...T) T {
	if len(vals) == 0 {
		panic("rng: OneOf called with no values")
	}
	return vals[IntN(r, len(vals))]
}

// OneOfFunc calls one of the generator functions, chosen uniformly with a
// single index draw. Panics if fns is empty.
func OneOfFunc[T any](r Source, fns ...func(Source) T) T {
	if len(fns) == 0 {
		panic("rng: OneOfFunc called with no functions")
	}
	return fns[IntN(r, len(fns))](r)
}
