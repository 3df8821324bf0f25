package store

import (
	"path/filepath"
	"testing"
)

func TestSQLiteSnapshotStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := NewSQLiteSnapshotStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteSnapshotStore failed: %v", err)
	}
	defer s.Close()

	blob := []byte("serialized-ontology-bytes")
	if err := s.SaveSnapshot("ont-1", 3, blob); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	version, got, err := s.LoadSnapshot("ont-1")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected version 3, got %d", version)
	}
	if string(got) != string(blob) {
		t.Fatalf("expected round-tripped blob to match, got %q", got)
	}

	// Lower version must not regress the stored snapshot.
	if err := s.SaveSnapshot("ont-1", 1, []byte("stale")); err != nil {
		t.Fatalf("SaveSnapshot (stale) failed: %v", err)
	}
	version, got, err = s.LoadSnapshot("ont-1")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if version != 3 || string(got) != string(blob) {
		t.Fatalf("expected stale write to be rejected, got version=%d blob=%q", version, got)
	}

	if err := s.DeleteSnapshot("ont-1"); err != nil {
		t.Fatalf("DeleteSnapshot failed: %v", err)
	}
	if _, _, err := s.LoadSnapshot("ont-1"); err == nil {
		t.Fatalf("expected error loading a deleted snapshot")
	}
}
