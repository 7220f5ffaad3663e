package config

import "time"

// MatchEverything is the default broadcast cache pattern.
const MatchEverything = "**"

// CachePolicy groups the relay cache policy configuration.
// The flat sections mirror the relay's config file; the optional pointer
// sections can be disabled by leaving them nil.
type CachePolicy struct {
	// Enabled turns caching on globally. When false the engine rejects
	// everything and all other fields are ignored.
	Enabled bool `yaml:"enabled"`

	Broadcast BroadcastCfg `yaml:"broadcast"`
	Track     TrackCfg     `yaml:"track"`
	Group     GroupCfg     `yaml:"group"`
	Limits    LimitsCfg    `yaml:"limits"`

	// Telemetry configures periodic decision statistics logging.
	// If nil, telemetry is disabled and queries trace nothing.
	Telemetry *TelemetryCfg `yaml:"telemetry"`

	// Memo configures memoization of broadcast pattern decisions.
	// If nil, every broadcast query re-runs pattern matching.
	Memo *MemoCfg `yaml:"memo"`
}

// BroadcastCfg filters broadcasts by path and bounds backup retention.
type BroadcastCfg struct {
	// CachePatterns are glob patterns for broadcast paths to cache.
	// '*' and '?' stop at path segment boundaries, '**' crosses them.
	CachePatterns []string `yaml:"cache_patterns"`

	// ExcludePatterns reject matching broadcasts even when a cache
	// pattern also matches.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// BackupMaxAgeSeconds evicts backup broadcasts at this age (0 = unlimited).
	BackupMaxAgeSeconds uint64 `yaml:"backup_max_age_seconds"`

	// BackupMaxCount evicts backups beyond this count (0 = unlimited).
	BackupMaxCount int `yaml:"backup_max_count"`
}

// TrackCfg filters tracks within a cached broadcast.
type TrackCfg struct {
	// MaxTracksPerBroadcast is reserved; the engine does not enforce it yet.
	MaxTracksPerBroadcast int `yaml:"max_tracks_per_broadcast"`

	// MinPriority is the inclusive lower bound for caching a track (0 = all).
	MinPriority uint8 `yaml:"min_priority"`
}

// GroupCfg bounds group retention per track. Both limits are enforced by
// the cache manager at insertion time; the engine only carries them.
type GroupCfg struct {
	MaxGroupsPerTrack int `yaml:"max_groups_per_track"`
	MaxFramesPerGroup int `yaml:"max_frames_per_group"`
}

// LimitsCfg holds global byte limits. Only MaxFrameSizeBytes is judged by
// the engine; the total and per-broadcast limits belong to the cache manager.
type LimitsCfg struct {
	MaxCacheSizeBytes     uint64 `yaml:"max_cache_size_bytes"`
	MaxBroadcastSizeBytes uint64 `yaml:"max_broadcast_size_bytes"`
	MaxFrameSizeBytes     uint64 `yaml:"max_frame_size_bytes"`
}

// TelemetryCfg configures decision counters and their periodic log line.
type TelemetryCfg struct {
	// LogInterval is how often aggregated decision deltas are logged.
	LogInterval time.Duration `yaml:"log_interval"`

	// TraceRejections logs each rejected item at debug level.
	TraceRejections bool `yaml:"trace_rejections"`

	// TraceSampleN keeps one of every N rejection traces (1 = all).
	TraceSampleN uint32 `yaml:"trace_sample_n"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}

// MemoCfg configures the sharded broadcast-decision memo.
type MemoCfg struct {
	// Shards is rounded up to a power of two.
	Shards int `yaml:"shards"`

	// MaxEntriesPerShard bounds shard growth; a full shard is reset.
	MaxEntriesPerShard int `yaml:"max_entries_per_shard"`
}

func (cfg *MemoCfg) Enabled() bool {
	return cfg != nil
}

// Default returns the passthrough configuration: cache everything, keep
// every backup, no thresholds, only the latest group retained per track.
func Default() *CachePolicy {
	return &CachePolicy{
		Enabled: true,
		Broadcast: BroadcastCfg{
			CachePatterns: []string{MatchEverything},
		},
		Group: GroupCfg{
			MaxGroupsPerTrack: 1,
		},
	}
}
