package memguard

import "testing"

type fakeCache struct {
	shrinks int
	clears  int
}

func (f *fakeCache) ShrinkAll() { f.shrinks++ }
func (f *fakeCache) ClearAll()  { f.clears++ }

func TestCheckOkWhenNoBudgetConfigured(t *testing.T) {
	g := New(Config{}, &fakeCache{})
	status, err := g.Check()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Ok {
		t.Fatalf("expected Ok with no budget configured, got %v", status)
	}
}

func TestCheckExceededTriggersShrinkThenClear(t *testing.T) {
	cache := &fakeCache{}
	// An unreasonably tiny budget guarantees HeapAlloc exceeds it, exercising
	// both the shrink and clear responses.
	g := New(Config{MaxBytes: 1, WarnThresholdPct: 50, FailOnExceeded: false}, cache)
	status, err := g.Check()
	if err != nil {
		t.Fatalf("unexpected error with FailOnExceeded=false: %v", err)
	}
	if status != Exceeded {
		t.Fatalf("expected Exceeded, got %v", status)
	}
	if cache.shrinks == 0 {
		t.Fatal("expected ShrinkAll to have been called")
	}
	if cache.clears == 0 {
		t.Fatal("expected ClearAll to have been called once shrink wasn't enough")
	}
}

func TestCheckExceededFailsWhenConfigured(t *testing.T) {
	cache := &fakeCache{}
	g := New(Config{MaxBytes: 1, WarnThresholdPct: 50, FailOnExceeded: true}, cache)
	_, err := g.Check()
	if err == nil {
		t.Fatal("expected a MemoryLimitExceeded error")
	}
	if _, ok := err.(*MemoryLimitExceeded); !ok {
		t.Fatalf("expected *MemoryLimitExceeded, got %T", err)
	}
}

func TestReportTracksPeakAndCleanupCount(t *testing.T) {
	cache := &fakeCache{}
	g := New(Config{MaxBytes: 1, WarnThresholdPct: 50}, cache)
	if _, err := g.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	report := g.Report()
	if report.PeakBytes == 0 {
		t.Fatal("expected a nonzero observed peak")
	}
	if report.CleanupCount == 0 {
		t.Fatal("expected at least one cleanup to be recorded")
	}
}
