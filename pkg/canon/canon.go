package canon

import (
	"context"
	"time"
)

// Config bounds the two canonicalization paths.
type Config struct {
	FastTimeoutMs     int
	PermutationBudget int
}

// DefaultConfig holds the documented defaults: 10ms fast-path timeout for
// Moderate graphs, 10^6 permutation budget for the standard path.
func DefaultConfig() Config {
	return Config{FastTimeoutMs: 10, PermutationBudget: 1_000_000}
}

// Result is a canonicalization outcome: the 256-bit hash plus GraphStats
// introspection, and whether the hash came from the fast path (and is
// therefore not collision-safe enough for uses beyond cache keys and
// equivalence pre-filtering).
type Result struct {
	Hash       [32]byte
	Stats      GraphStats
	FastPathOnly bool
}

// Canonicalizer computes order-independent hashes of RDF graphs containing
// blank nodes, selecting the fast "magic placeholder" path or
// the standard RDFC-1.0 path by structural complexity.
type Canonicalizer struct {
	cfg Config
}

func New(cfg Config) *Canonicalizer {
	if cfg.PermutationBudget <= 0 {
		cfg.PermutationBudget = DefaultConfig().PermutationBudget
	}
	if cfg.FastTimeoutMs <= 0 {
		cfg.FastTimeoutMs = DefaultConfig().FastTimeoutMs
	}
	return &Canonicalizer{cfg: cfg}
}

// Hash computes the canonical hash of triples, choosing an algorithm per
// the graph's structural classification. Simple graphs always use the
// fast path. Moderate graphs try the fast path under a timeout and fall
// back to the standard path if it doesn't finish in time. Complex and
// Pathological graphs always use the standard path.
func (c *Canonicalizer) Hash(ctx context.Context, triples []Triple) (Result, error) {
	stats := classify(triples)

	switch stats.Class {
	case Simple:
		return Result{Hash: fastPathHash(triples), Stats: stats, FastPathOnly: true}, nil
	case Moderate:
		if h, ok := c.tryFastPathWithTimeout(triples); ok {
			return Result{Hash: h, Stats: stats, FastPathOnly: true}, nil
		}
		fallthrough
	default:
		h, err := standardPathHash(triples, c.cfg.PermutationBudget)
		if err != nil {
			return Result{}, err
		}
		return Result{Hash: h, Stats: stats, FastPathOnly: false}, nil
	}
}

// tryFastPathWithTimeout runs the fast path on its own goroutine and gives
// up after FastTimeoutMs, falling back to the standard path on timeout.
func (c *Canonicalizer) tryFastPathWithTimeout(triples []Triple) ([32]byte, bool) {
	done := make(chan [32]byte, 1)
	go func() {
		done <- fastPathHash(triples)
	}()
	select {
	case h := <-done:
		return h, true
	case <-time.After(time.Duration(c.cfg.FastTimeoutMs) * time.Millisecond):
		return [32]byte{}, false
	}
}
