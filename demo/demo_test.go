package demo_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/shipq/randgen/demo"
	"github.com/shipq/randgen/derive"
	"github.com/shipq/randgen/descriptor"
	"github.com/shipq/randgen/rng"
	"github.com/shipq/randgen/rng/rngtest"
)

// countingSource wraps a Source and counts raw draws.
type countingSource struct {
	src   rng.Source
	draws int
}

func (c *countingSource) Uint64() uint64 {
	c.draws++
	return c.src.Uint64()
}

func TestRandomColor_CyclicDrawsMapToVariants(t *testing.T) {
	// Index draws below the variant count map to themselves, so a cyclic
	// 0,1,2 source walks the variants in declaration order.
	r := rng.Cycle(0, 1, 2)
	want := []demo.Color{demo.Red, demo.Green, demo.Blue}
	for i := 0; i < 9; i++ {
		if got := demo.RandomColor(r); got != want[i%3] {
			t.Fatalf("call %d: RandomColor = %v, want %v", i, got, want[i%3])
		}
	}
}

func TestRandomColor_OneDrawPerValue(t *testing.T) {
	r := &countingSource{src: rng.Cycle(1)}
	demo.RandomColor(r)
	if r.draws != 1 {
		t.Errorf("RandomColor consumed %d draws, want 1", r.draws)
	}
}

func TestRandomColor_Uniform(t *testing.T) {
	const samples = 30000
	r := rng.Seeded(42)

	counts := make(map[demo.Color]int)
	for i := 0; i < samples; i++ {
		counts[demo.RandomColor(r)]++
	}

	want := float64(samples) / 3
	for _, c := range []demo.Color{demo.Red, demo.Green, demo.Blue} {
		if diff := float64(counts[c]) - want; diff > want*0.05 || diff < -want*0.05 {
			t.Errorf("color %v drawn %d times, want about %.0f", c, counts[c], want)
		}
	}
}

func TestRandomPoint_TwoDraws(t *testing.T) {
	r := &countingSource{src: rng.Seeded(1)}
	demo.RandomPoint(r)
	if r.draws != 2 {
		t.Errorf("RandomPoint consumed %d draws, want 2", r.draws)
	}
}

func TestRandomSegment_DelegatesPerField(t *testing.T) {
	r := &countingSource{src: rng.Seeded(1)}
	demo.RandomSegment(r)
	if r.draws != 4 {
		t.Errorf("RandomSegment consumed %d draws, want 4", r.draws)
	}

	// Same seed generates the segment as two points drawn in field order.
	a := rng.Seeded(7)
	b := rng.Seeded(7)
	seg := demo.RandomSegment(a)
	if start := demo.RandomPoint(b); seg.Start != start {
		t.Errorf("Start = %+v, want %+v", seg.Start, start)
	}
	if end := demo.RandomPoint(b); seg.End != end {
		t.Errorf("End = %+v, want %+v", seg.End, end)
	}
}

func TestRandomShape_VariantSelection(t *testing.T) {
	// Draw 0 selects Circle, then one draw fills Radius.
	if _, ok := demo.RandomShape(rng.Cycle(0, 5)).(demo.Circle); !ok {
		t.Error("draw 0 should select Circle")
	}
	// Draw 1 selects Rect.
	if _, ok := demo.RandomShape(rng.Cycle(1, 5)).(demo.Rect); !ok {
		t.Error("draw 1 should select Rect")
	}
}

func TestRandomShape_NeverNil(t *testing.T) {
	rngtest.QuickCheck(t, "RandomShape returns a variant", func(r rng.Source) bool {
		switch demo.RandomShape(r).(type) {
		case demo.Circle, demo.Rect:
			return true
		default:
			return false
		}
	})
}

func TestRandomNode_BaseCase(t *testing.T) {
	// Value draw, then an even draw ends the chain.
	r := &countingSource{src: rng.Cycle(5, 0)}
	n := demo.RandomNode(r)
	if n.Value != 5 {
		t.Errorf("Value = %d, want 5", n.Value)
	}
	if n.Next != nil {
		t.Error("even pointer draw should end the chain")
	}
	if r.draws != 2 {
		t.Errorf("consumed %d draws, want 2", r.draws)
	}
}

func TestRandomNode_ChainsTerminate(t *testing.T) {
	rngtest.QuickCheck(t, "node chains are finite", func(r rng.Source) bool {
		n := demo.RandomNode(r)
		hops := 0
		for cur := &n; cur != nil; cur = cur.Next {
			hops++
		}
		return hops >= 1
	})
}

func TestRandomPair(t *testing.T) {
	r := rng.Cycle(9, 1)
	p := demo.RandomPair(r, rng.Uint64, rng.Bool)
	if p.First != 9 {
		t.Errorf("First = %d, want 9", p.First)
	}
	if p.Second != true {
		t.Errorf("Second = %v, want true", p.Second)
	}
}

func TestRandomMarker_NoDraws(t *testing.T) {
	r := &countingSource{src: rng.Seeded(1)}
	demo.RandomMarker(r)
	if r.draws != 0 {
		t.Errorf("RandomMarker consumed %d draws, want 0", r.draws)
	}
}

func TestDeterminism(t *testing.T) {
	a := rng.Seeded(1234)
	b := rng.Seeded(1234)

	for i := 0; i < 50; i++ {
		if demo.RandomSegment(a) != demo.RandomSegment(b) {
			t.Fatalf("iteration %d: equal seeds diverged", i)
		}
	}
}

// TestGeneratedFileIsCurrent regenerates this package's descriptors in
// memory and checks the committed file matches the emitter's output.
func TestGeneratedFileIsCurrent(t *testing.T) {
	descs, err := descriptor.ExtractDir(".")
	if err != nil {
		t.Fatalf("ExtractDir failed: %v", err)
	}

	procs := make([]*derive.Procedure, len(descs))
	for i, d := range descs {
		p, err := derive.Derive(d)
		if err != nil {
			t.Fatalf("Derive(%s) failed: %v", d.Name, err)
		}
		procs[i] = p
	}

	want, err := derive.EmitFile("demo", "", procs)
	if err != nil {
		t.Fatalf("EmitFile failed: %v", err)
	}

	got, err := os.ReadFile("zz_generated_random.go")
	if err != nil {
		t.Fatalf("failed to read committed file: %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Error("zz_generated_random.go is stale; run randgen gen")
	}
}
