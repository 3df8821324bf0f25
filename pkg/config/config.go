// Package config loads the reasoner's Config: defaults, then an
// optional YAML file, then environment variable overrides, mirroring the
// teacher's pkg/config override order (env-only, generalized here to also
// accept a file since the reasoner's Config has far more knobs than a
// worker's).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MemoryConfig configures the Memory Guard.
type MemoryConfig struct {
	MaxBytes         uint64 `yaml:"max_bytes"`
	MaxCacheEntries  int    `yaml:"max_cache_entries"`
	CheckIntervalSec int    `yaml:"check_interval_sec"`
	WarnThresholdPct int    `yaml:"warn_threshold_pct"`
	FailOnExceeded   bool   `yaml:"fail_on_exceeded"`
}

// CacheConfig sizes the Cache Tier.
type CacheConfig struct {
	HotCapacity int `yaml:"hot_capacity"`
	LRUCapacity int `yaml:"lru_capacity"`
}

// Config is the flat, enumerated record the reasoner loads at startup.
type Config struct {
	MaxTableauNodes        int    `yaml:"max_tableau_nodes"`
	QueryTimeoutMs         int    `yaml:"query_timeout_ms"`
	UseAdvancedReasoning   bool   `yaml:"use_advanced_reasoning"`
	BlockingStrategy       string `yaml:"blocking_strategy"` // subset | equality | pairwise | auto
	CanonFastTimeoutMs     int    `yaml:"canon_fast_timeout_ms"`
	CanonPermutationBudget int    `yaml:"canon_permutation_budget"`

	Memory MemoryConfig `yaml:"memory"`
	Cache  CacheConfig  `yaml:"cache"`
}

// Default returns the conservative defaults a correctness-first reasoning
// core starts from absent any file or environment override.
func Default() *Config {
	return &Config{
		MaxTableauNodes:        50_000,
		QueryTimeoutMs:         30_000,
		UseAdvancedReasoning:   true,
		BlockingStrategy:       "equality",
		CanonFastTimeoutMs:     10,
		CanonPermutationBudget: 1_000_000,
		Memory: MemoryConfig{
			MaxBytes:         1 << 30, // 1 GiB
			MaxCacheEntries:  100_000,
			CheckIntervalSec: 5,
			WarnThresholdPct: 80,
			FailOnExceeded:   false,
		},
		Cache: CacheConfig{
			HotCapacity: 4096,
			LRUCapacity: 16384,
		},
	}
}

// Load builds a Config from defaults, then path (if non-empty), then
// environment variables, in that order — each stage only overrides fields
// it actually sets.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.MaxTableauNodes = getEnvAsInt("REASONER_MAX_TABLEAU_NODES", cfg.MaxTableauNodes)
	cfg.QueryTimeoutMs = getEnvAsInt("REASONER_QUERY_TIMEOUT_MS", cfg.QueryTimeoutMs)
	cfg.UseAdvancedReasoning = getEnvAsBool("REASONER_USE_ADVANCED_REASONING", cfg.UseAdvancedReasoning)
	cfg.BlockingStrategy = getEnv("REASONER_BLOCKING_STRATEGY", cfg.BlockingStrategy)
	cfg.CanonFastTimeoutMs = getEnvAsInt("REASONER_CANON_FAST_TIMEOUT_MS", cfg.CanonFastTimeoutMs)
	cfg.CanonPermutationBudget = getEnvAsInt("REASONER_CANON_PERMUTATION_BUDGET", cfg.CanonPermutationBudget)

	cfg.Memory.MaxBytes = uint64(getEnvAsInt("REASONER_MEMORY_MAX_BYTES", int(cfg.Memory.MaxBytes)))
	cfg.Memory.MaxCacheEntries = getEnvAsInt("REASONER_MEMORY_MAX_CACHE_ENTRIES", cfg.Memory.MaxCacheEntries)
	cfg.Memory.CheckIntervalSec = getEnvAsInt("REASONER_MEMORY_CHECK_INTERVAL_SEC", cfg.Memory.CheckIntervalSec)
	cfg.Memory.WarnThresholdPct = getEnvAsInt("REASONER_MEMORY_WARN_THRESHOLD_PCT", cfg.Memory.WarnThresholdPct)
	cfg.Memory.FailOnExceeded = getEnvAsBool("REASONER_MEMORY_FAIL_ON_EXCEEDED", cfg.Memory.FailOnExceeded)

	cfg.Cache.HotCapacity = getEnvAsInt("REASONER_CACHE_HOT_CAPACITY", cfg.Cache.HotCapacity)
	cfg.Cache.LRUCapacity = getEnvAsInt("REASONER_CACHE_LRU_CAPACITY", cfg.Cache.LRUCapacity)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt retrieves an environment variable as an integer or returns a
// default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves an environment variable as a bool or returns a
// default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
