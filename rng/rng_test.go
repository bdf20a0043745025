package rng_test

import (
	"testing"

	"github.com/shipq/randgen/rng"
	"github.com/shipq/randgen/rng/rngtest"
)

func TestUint64n_InRange(t *testing.T) {
	rngtest.QuickCheck(t, "Uint64n stays in [0, n)", func(r rng.Source) bool {
		n := rng.Uint64n(r, 100) + 1
		return rng.Uint64n(r, n) < n
	})
}

func TestUint64n_DirectMapping(t *testing.T) {
	// Raw draws already below n must map to themselves. This is what makes
	// a cyclic 0,1,2 source select variants 0,1,2 in order.
	r := rng.Cycle(0, 1, 2)
	for i := 0; i < 9; i++ {
		want := uint64(i % 3)
		if got := rng.Uint64n(r, 3); got != want {
			t.Fatalf("draw %d: Uint64n(r, 3) = %d, want %d", i, got, want)
		}
	}
}

func TestUint64n_RejectsOutOfRangeDraws(t *testing.T) {
	// n=3 masks to the low two bits; a raw 3 must be rejected, not reduced.
	r := rng.Cycle(3, 1)
	if got := rng.Uint64n(r, 3); got != 1 {
		t.Errorf("Uint64n(r, 3) = %d, want 1 (raw draw 3 should be rejected)", got)
	}
}

func TestUint64n_SingleValueNeedsNoDraw(t *testing.T) {
	r := &countingSource{src: rng.Seeded(1)}
	if got := rng.Uint64n(r, 1); got != 0 {
		t.Errorf("Uint64n(r, 1) = %d, want 0", got)
	}
	if r.draws != 0 {
		t.Errorf("Uint64n(r, 1) consumed %d draws, want 0", r.draws)
	}
}

func TestUint64n_ZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Uint64n(r, 0) did not panic")
		}
	}()
	rng.Uint64n(rng.Seeded(1), 0)
}

func TestUint64n_Uniformity(t *testing.T) {
	const n = 5
	const samples = 50000

	r := rng.Seeded(42)
	counts := make([]int, n)
	for i := 0; i < samples; i++ {
		counts[rng.Uint64n(r, n)]++
	}

	want := float64(samples) / n
	for v, c := range counts {
		if diff := float64(c) - want; diff > want*0.05 || diff < -want*0.05 {
			t.Errorf("value %d drawn %d times, want about %.0f", v, c, want)
		}
	}
}

func TestSeeded_Deterministic(t *testing.T) {
	a := rng.Seeded(7)
	b := rng.Seeded(7)
	for i := 0; i < 100; i++ {
		if av, bv := a.Uint64(), b.Uint64(); av != bv {
			t.Fatalf("draw %d: sources diverged (%d vs %d)", i, av, bv)
		}
	}
}

func TestFloat64_UnitInterval(t *testing.T) {
	rngtest.QuickCheck(t, "Float64 in [0, 1)", func(r rng.Source) bool {
		f := rng.Float64(r)
		return f >= 0 && f < 1
	})
}

func TestFloat32_UnitInterval(t *testing.T) {
	rngtest.QuickCheck(t, "Float32 in [0, 1)", func(r rng.Source) bool {
		f := rng.Float32(r)
		return f >= 0 && f < 1
	})
}

func TestRune_ValidScalar(t *testing.T) {
	rngtest.QuickCheck(t, "Rune avoids surrogates", func(r rng.Source) bool {
		c := rng.Rune(r)
		return c >= 0 && c <= 0x10FFFF && (c < 0xD800 || c > 0xDFFF)
	})
}

func TestString_Bounded(t *testing.T) {
	rngtest.QuickCheck(t, "String length bounded", func(r rng.Source) bool {
		return len(rng.String(r)) <= rng.MaxStringLen
	})
}

func TestPtrOf_NilArm(t *testing.T) {
	// An even first draw means Bool is false: nil, and nothing else drawn.
	r := &countingSource{src: rng.Cycle(0)}
	if p := rng.PtrOf(r, rng.Int64); p != nil {
		t.Fatalf("PtrOf with false bool draw = %v, want nil", *p)
	}
	if r.draws != 1 {
		t.Errorf("nil arm consumed %d draws, want 1", r.draws)
	}
}

func TestPtrOf_ValueArm(t *testing.T) {
	r := rng.Cycle(1, 99)
	p := rng.PtrOf(r, rng.Uint64)
	if p == nil {
		t.Fatal("PtrOf with true bool draw = nil, want value")
	}
	if *p != 99 {
		t.Errorf("*p = %d, want 99", *p)
	}
}

func TestSliceOf_Bounded(t *testing.T) {
	rngtest.QuickCheck(t, "SliceOf length bounded", func(r rng.Source) bool {
		return len(rng.SliceOf(r, rng.Bool)) <= rng.MaxSeqLen
	})
}

func TestMapOf_Bounded(t *testing.T) {
	rngtest.QuickCheck(t, "MapOf size bounded", func(r rng.Source) bool {
		return len(rng.MapOf(r, rng.Uint32, rng.Bool)) <= rng.MaxSeqLen
	})
}

func TestOneOf_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("OneOf with no values did not panic")
		}
	}()
	rng.OneOf[int](rng.Seeded(1))
}

func TestCycle_Replays(t *testing.T) {
	r := rng.Cycle(10, 20)
	got := []uint64{r.Uint64(), r.Uint64(), r.Uint64(), r.Uint64()}
	want := []uint64{10, 20, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d = %d, want %d", i, got[i], want[i])
		}
	}
}

// countingSource wraps a Source and counts raw draws.
type countingSource struct {
	src   rng.Source
	draws int
}

func (c *countingSource) Uint64() uint64 {
	c.draws++
	return c.src.Uint64()
}
