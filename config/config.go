package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultLogInterval  = 5 * time.Second
	defaultMemoShards   = 16
	defaultMemoCapacity = 4096
)

// AdjustConfig normalizes a loaded configuration in place: an empty cache
// pattern list falls back to the match-everything default, and the optional
// sections receive their defaults when enabled but left unset.
func (cfg *CachePolicy) AdjustConfig() {
	if len(cfg.Broadcast.CachePatterns) == 0 {
		cfg.Broadcast.CachePatterns = []string{MatchEverything}
	}

	if cfg.Telemetry.Enabled() {
		if cfg.Telemetry.LogInterval <= 0 {
			cfg.Telemetry.LogInterval = defaultLogInterval
		}
		if cfg.Telemetry.TraceSampleN == 0 {
			cfg.Telemetry.TraceSampleN = 1
		}
	}

	if cfg.Memo.Enabled() {
		if cfg.Memo.Shards <= 0 {
			cfg.Memo.Shards = defaultMemoShards
		}
		if cfg.Memo.MaxEntriesPerShard <= 0 {
			cfg.Memo.MaxEntriesPerShard = defaultMemoCapacity
		}
	}
}

// LoadConfig reads and normalizes a YAML cache policy configuration.
func LoadConfig(path string) (*CachePolicy, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *CachePolicy
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	return cfg, nil
}
