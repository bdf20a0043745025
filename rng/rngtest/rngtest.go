// Package rngtest runs property-style tests against seeded rng sources.
//
// A property is a function that takes a Source and reports whether an
// invariant held for the values it drew. Properties run many times with
// fresh draws; on failure the seed is logged so the run can be reproduced
// with the RANDGEN_SEED environment variable.
//
//	rngtest.QuickCheck(t, "index in range", func(r rng.Source) bool {
//	    return rng.IntN(r, 10) < 10
//	})
package rngtest

import (
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/shipq/randgen/rng"
)

// Config controls property runs.
type Config struct {
	// Trials is the number of times the property is evaluated. Default: 100.
	Trials int

	// Seed seeds the source. 0 means time-based.
	Seed uint64

	// Verbose logs the seed and trial count even on success.
	Verbose bool
}

// DefaultConfig returns the defaults used by QuickCheck.
func DefaultConfig() Config {
	return Config{Trials: 100}
}

// effectiveSeed resolves the seed, preferring RANDGEN_SEED for reproduction.
func effectiveSeed(cfg Config) uint64 {
	if env := os.Getenv("RANDGEN_SEED"); env != "" {
		if seed, err := strconv.ParseUint(env, 10, 64); err == nil {
			return seed
		}
	}
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Check evaluates a property cfg.Trials times against one seeded source.
// On failure it logs the seed so the exact run can be replayed.
func Check(t *testing.T, name string, cfg Config, prop func(r rng.Source) bool) {
	t.Helper()

	if cfg.Trials <= 0 {
		cfg.Trials = 100
	}

	seed := effectiveSeed(cfg)
	r := rng.Seeded(seed)

	if cfg.Verbose {
		t.Logf("property %q: running %d trials with seed %d", name, cfg.Trials, seed)
	}

	for i := 0; i < cfg.Trials; i++ {
		if !prop(r) {
			t.Errorf("property %q failed on trial %d (seed=%d, use RANDGEN_SEED=%d to reproduce)",
				name, i+1, seed, seed)
			return
		}
	}

	if cfg.Verbose {
		t.Logf("property %q: passed %d trials", name, cfg.Trials)
	}
}

// QuickCheck runs a property with the default configuration.
func QuickCheck(t *testing.T, name string, prop func(r rng.Source) bool) {
	t.Helper()
	Check(t, name, DefaultConfig(), prop)
}

// RunSeeds replays a property under specific seeds. Useful for pinning
// regressions found by a failed Check run.
func RunSeeds(t *testing.T, name string, seeds []uint64, prop func(r rng.Source) bool) {
	t.Helper()

	for _, seed := range seeds {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			if !prop(rng.Seeded(seed)) {
				t.Errorf("property %q failed with seed %d", name, seed)
			}
		})
	}
}
