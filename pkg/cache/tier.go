// Package cache implements the multi-tier, version-aware result cache that
// sits in front of the reasoning façade: a small hot concurrent
// map for the most recently touched keys, backed by an LRU overflow tier,
// with every entry tagged by the ontology version it was computed against
// so that a stale write never needs to be eagerly evicted — it is simply
// skipped on the next read and reaped by the LRU in due course.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultHotCapacity = 256

// VersionSource reports the current version of the ontology a Tier is
// caching results against. *store.Ontology satisfies this.
type VersionSource interface {
	Version() uint64
}

// Tier is a single named cache: a hot map of bounded cardinality layered
// over an LRU overflow, both storing version-tagged entries. One Tier
// instance backs one named cache (Consistency, Satisfiability, Subsumption,
// Instance).
type Tier struct {
	name string
	hot  *hotMap
	lru  *lru.Cache[string, hotEntry]

	hits   int64
	misses int64
	stale  int64
}

// NewTier builds a Tier with the given hot-map slot count and LRU overflow
// capacity. lruCapacity must be positive; hotCapacity defaults to 256 when
// non-positive.
func NewTier(name string, hotCapacity, lruCapacity int) (*Tier, error) {
	if hotCapacity <= 0 {
		hotCapacity = defaultHotCapacity
	}
	overflow, err := lru.New[string, hotEntry](lruCapacity)
	if err != nil {
		return nil, err
	}
	return &Tier{
		name: name,
		hot:  newHotMap(hotCapacity),
		lru:  overflow,
	}, nil
}

// Get looks up key, accepting the entry only if it was tagged with
// currentVersion. A version mismatch is treated identically to a miss.
func (t *Tier) Get(key string, currentVersion uint64) (any, bool) {
	if e, ok := t.hot.get(key); ok {
		if e.version == currentVersion {
			atomic.AddInt64(&t.hits, 1)
			return e.value, true
		}
		atomic.AddInt64(&t.stale, 1)
	}
	if e, ok := t.lru.Get(key); ok {
		if e.version == currentVersion {
			atomic.AddInt64(&t.hits, 1)
			// Promote to the hot tier; this is the mechanism by which a
			// frequently re-read key migrates back out of the LRU.
			t.hot.put(key, e)
			return e.value, true
		}
		t.lru.Remove(key)
		atomic.AddInt64(&t.stale, 1)
	}
	atomic.AddInt64(&t.misses, 1)
	return nil, false
}

// Put stores value under key, tagged with version, in both the hot tier and
// the LRU. A later write that reuses the same hot slot for a different key
// displaces the entry from the hot tier only; the LRU copy still serves it.
func (t *Tier) Put(key string, version uint64, value any) {
	e := hotEntry{value: value, version: version, set: true}
	t.hot.put(key, e)
	t.lru.Add(key, e)
}

// Invalidate removes key from both tiers unconditionally. Used when a
// specific cached answer is known to be wrong regardless of version (rare;
// most invalidation is the passive version-mismatch path).
func (t *Tier) Invalidate(key string) {
	s := t.hot.slotFor(key)
	s.mu.Lock()
	if s.key == key {
		s.key = ""
		s.e = hotEntry{}
	}
	s.mu.Unlock()
	t.lru.Remove(key)
}

// ShrinkLRU discards the least-recently-used half of the overflow tier.
// This is the Memory Guard's first response to memory pressure:
// shed the LRU tier before touching the hot tier, since the hot tier is
// small and cheap to keep.
func (t *Tier) ShrinkLRU() {
	target := t.lru.Len() / 2
	for t.lru.Len() > target {
		if _, _, ok := t.lru.RemoveOldest(); !ok {
			break
		}
	}
}

// Clear drops every entry in both tiers. The Memory Guard's last-resort
// response to sustained memory pressure.
func (t *Tier) Clear() {
	t.hot.clear()
	t.lru.Purge()
}

// Stats reports cumulative hit/miss/staleness counters for diagnostics.
type Stats struct {
	Name   string
	Hits   uint64
	Misses uint64
	Stale  uint64
	LRULen int
}

func (t *Tier) Stats() Stats {
	return Stats{
		Name:   t.name,
		Hits:   uint64(atomic.LoadInt64(&t.hits)),
		Misses: uint64(atomic.LoadInt64(&t.misses)),
		Stale:  uint64(atomic.LoadInt64(&t.stale)),
		LRULen: t.lru.Len(),
	}
}
