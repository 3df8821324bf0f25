// Package memguard implements the Memory Guard: a background
// sampler that periodically checks process memory against a configured
// budget, shrinking (and, if still over budget, clearing) the Cache Tier
// before refusing further work. It wraps a robfig/cron.Cron to drive the
// periodic check, the same way a scheduler service drives per-job work —
// generalized here from a per-job schedule table to a single fixed-interval
// check.
package memguard

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/robfig/cron/v3"
)

// Status is the outcome of one memory check.
type Status int

const (
	Ok Status = iota
	Warn
	Exceeded
)

func (s Status) String() string {
	switch s {
	case Warn:
		return "warn"
	case Exceeded:
		return "exceeded"
	default:
		return "ok"
	}
}

// MemoryReport summarizes the guard's observations since it started.
type MemoryReport struct {
	PeakBytes    uint64
	CurrentBytes uint64
	CleanupCount int
	LastStatus   Status
}

// CacheShrinker is the subset of cache.Manager the guard needs; declared
// locally so pkg/memguard doesn't import pkg/cache just to call two methods.
type CacheShrinker interface {
	ShrinkAll()
	ClearAll()
}

// Config bounds the guard.
type Config struct {
	MaxBytes         uint64
	MaxCacheEntries  int
	CheckIntervalSec int
	WarnThresholdPct int
	FailOnExceeded   bool
}

// MemoryLimitExceeded is returned by Check when the budget is still
// exceeded after both cache-shrinking responses and FailOnExceeded is set.
// It reaches only direct callers of Check: the periodic check started by
// Start discards it, and the reasoning façade does not consult the guard,
// so in-flight queries are not aborted.
type MemoryLimitExceeded struct {
	CurrentBytes uint64
	MaxBytes     uint64
}

func (e *MemoryLimitExceeded) Error() string {
	return fmt.Sprintf("memguard: %d bytes exceeds the %d byte budget after cache cleanup", e.CurrentBytes, e.MaxBytes)
}

// Guard samples runtime.MemStats on a cron-driven interval and reacts to
// budget pressure.
type Guard struct {
	cfg   Config
	cache CacheShrinker
	cron  *cron.Cron
	entry cron.EntryID

	mu           sync.Mutex
	peak         uint64
	current      uint64
	cleanupCount int
	lastStatus   Status
}

// New builds a Guard over cache, which it shrinks or clears under pressure.
func New(cfg Config, cache CacheShrinker) *Guard {
	if cfg.CheckIntervalSec <= 0 {
		cfg.CheckIntervalSec = 5
	}
	if cfg.WarnThresholdPct <= 0 {
		cfg.WarnThresholdPct = 80
	}
	return &Guard{cfg: cfg, cache: cache, cron: cron.New()}
}

// Start begins periodic checking: register the job, then start the
// underlying cron.
func (g *Guard) Start() error {
	spec := fmt.Sprintf("@every %ds", g.cfg.CheckIntervalSec)
	id, err := g.cron.AddFunc(spec, func() { g.Check() })
	if err != nil {
		return fmt.Errorf("memguard: invalid check interval: %w", err)
	}
	g.entry = id
	g.cron.Start()
	log.Println("memory guard started")
	return nil
}

// Stop halts periodic checking.
func (g *Guard) Stop() {
	g.cron.Stop()
	log.Println("memory guard stopped")
}

// Check samples current memory usage and reacts to budget pressure,
// returning both the observed status and, when FailOnExceeded triggers, a
// *MemoryLimitExceeded error.
func (g *Guard) Check() (Status, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	used := ms.HeapAlloc

	g.mu.Lock()
	g.current = used
	if used > g.peak {
		g.peak = used
	}
	g.mu.Unlock()

	if g.cfg.MaxBytes == 0 {
		g.setStatus(Ok)
		return Ok, nil
	}

	warnAt := g.cfg.MaxBytes * uint64(g.cfg.WarnThresholdPct) / 100
	switch {
	case used < warnAt:
		g.setStatus(Ok)
		return Ok, nil
	case used < g.cfg.MaxBytes:
		log.Printf("memory guard: warn: %d bytes crosses the %d%% threshold of a %d byte budget", used, g.cfg.WarnThresholdPct, g.cfg.MaxBytes)
		g.setStatus(Warn)
		return Warn, nil
	}

	log.Printf("memory guard: exceeded: %d bytes over the %d byte budget, shrinking cache", used, g.cfg.MaxBytes)
	g.cache.ShrinkAll()
	g.recordCleanup()
	runtime.ReadMemStats(&ms)
	if ms.HeapAlloc >= g.cfg.MaxBytes {
		log.Printf("memory guard: still over budget after shrink, clearing cache")
		g.cache.ClearAll()
		g.recordCleanup()
		runtime.ReadMemStats(&ms)
	}

	g.mu.Lock()
	g.current = ms.HeapAlloc
	if ms.HeapAlloc > g.peak {
		g.peak = ms.HeapAlloc
	}
	g.mu.Unlock()

	if ms.HeapAlloc >= g.cfg.MaxBytes {
		g.setStatus(Exceeded)
		if g.cfg.FailOnExceeded {
			return Exceeded, &MemoryLimitExceeded{CurrentBytes: ms.HeapAlloc, MaxBytes: g.cfg.MaxBytes}
		}
		return Exceeded, nil
	}
	g.setStatus(Warn)
	return Warn, nil
}

func (g *Guard) setStatus(s Status) {
	g.mu.Lock()
	g.lastStatus = s
	g.mu.Unlock()
}

func (g *Guard) recordCleanup() {
	g.mu.Lock()
	g.cleanupCount++
	g.mu.Unlock()
}

// Report returns a snapshot of the guard's observations").
func (g *Guard) Report() MemoryReport {
	g.mu.Lock()
	defer g.mu.Unlock()
	return MemoryReport{
		PeakBytes:    g.peak,
		CurrentBytes: g.current,
		CleanupCount: g.cleanupCount,
		LastStatus:   g.lastStatus,
	}
}
