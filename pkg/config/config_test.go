package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsUsableStandalone(t *testing.T) {
	cfg := Default()
	if cfg.MaxTableauNodes <= 0 {
		t.Fatal("expected a positive default node budget")
	}
	if cfg.Cache.HotCapacity <= 0 || cfg.Cache.LRUCapacity <= 0 {
		t.Fatal("expected positive default cache capacities")
	}
}

func TestLoadFromYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reasoner.yaml")
	body := "max_tableau_nodes: 123\nblocking_strategy: pairwise\ncache:\n  hot_capacity: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTableauNodes != 123 {
		t.Fatalf("expected MaxTableauNodes=123, got %d", cfg.MaxTableauNodes)
	}
	if cfg.BlockingStrategy != "pairwise" {
		t.Fatalf("expected blocking_strategy=pairwise, got %q", cfg.BlockingStrategy)
	}
	if cfg.Cache.HotCapacity != 7 {
		t.Fatalf("expected cache.hot_capacity=7, got %d", cfg.Cache.HotCapacity)
	}
	// Untouched fields keep their defaults.
	if cfg.Cache.LRUCapacity != Default().Cache.LRUCapacity {
		t.Fatalf("expected untouched lru_capacity to keep its default")
	}
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reasoner.yaml")
	if err := os.WriteFile(path, []byte("max_tableau_nodes: 123\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("REASONER_MAX_TABLEAU_NODES", "999")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTableauNodes != 999 {
		t.Fatalf("expected env override to win, got %d", cfg.MaxTableauNodes)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path/reasoner.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
