package policy

import (
	"github.com/P4sTela/moq-cache/config"
)

// Build selects the cheapest policy variant that honors cfg.
//
// Disabled caching yields NeverCachePolicy regardless of any other field.
// A passthrough configuration (the defaults: match-everything pattern, no
// excludes, no thresholds) yields AlwaysCachePolicy, which decides
// identically to the pattern variant for that configuration without any
// matching work. Everything else compiles into a PatternBasedPolicy.
func Build(cfg *config.CachePolicy) (Policy, error) {
	if !cfg.Enabled {
		return NeverCachePolicy{}, nil
	}

	if isPassthrough(cfg) {
		return AlwaysCachePolicy{}, nil
	}

	return NewPatternBased(PatternOptions{
		CachePatterns:       cfg.Broadcast.CachePatterns,
		ExcludePatterns:     cfg.Broadcast.ExcludePatterns,
		MinTrackPriority:    cfg.Track.MinPriority,
		BackupMaxAgeSeconds: cfg.Broadcast.BackupMaxAgeSeconds,
		BackupMaxCount:      cfg.Broadcast.BackupMaxCount,
		MaxGroupsPerTrack:   cfg.Group.MaxGroupsPerTrack,
		MaxFramesPerGroup:   cfg.Group.MaxFramesPerGroup,
		MaxFrameSizeBytes:   cfg.Limits.MaxFrameSizeBytes,
	})
}

// isPassthrough reports whether cfg filters nothing: a single
// match-everything cache pattern and every threshold unset.
func isPassthrough(cfg *config.CachePolicy) bool {
	return len(cfg.Broadcast.CachePatterns) == 1 &&
		cfg.Broadcast.CachePatterns[0] == config.MatchEverything &&
		len(cfg.Broadcast.ExcludePatterns) == 0 &&
		cfg.Track.MinPriority == 0 &&
		cfg.Broadcast.BackupMaxAgeSeconds == 0 &&
		cfg.Broadcast.BackupMaxCount == 0 &&
		cfg.Limits.MaxFrameSizeBytes == 0
}
