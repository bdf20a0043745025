package rng

// Cycle returns a Source that replays vals forever, in order. It exists for
// tests that need exact control over every draw; with it, the mapping from
// raw draws to generated values can be asserted draw by draw.
//
// Panics if vals is empty.
func Cycle(vals ...uint64) Source {
	if len(vals) == 0 {
		panic("rng: Cycle called with no values")
	}
	return &cycle{vals: vals}
}

type cycle struct {
	vals []uint64
	next int
}

func (c *cycle) Uint64() uint64 {
	v := c.vals[c.next]
	c.next = (c.next + 1) % len(c.vals)
	return v
}
