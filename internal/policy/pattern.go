package policy

import (
	"fmt"

	"github.com/gobwas/glob"
)

// pathSeparator bounds single-segment wildcards: '*' and '?' stop at it,
// '**' crosses it.
const pathSeparator = '/'

// PatternOptions carries the raw rules for a pattern-based policy.
// Zero means "unlimited" for every numeric field.
type PatternOptions struct {
	// CachePatterns are glob patterns for broadcast paths to cache.
	CachePatterns []string
	// ExcludePatterns are glob patterns for broadcast paths to reject.
	// An exclude match wins over any cache pattern match.
	ExcludePatterns []string
	// MinTrackPriority is the inclusive lower bound for track admission.
	MinTrackPriority uint8
	// BackupMaxAgeSeconds evicts backups once their age reaches the limit.
	BackupMaxAgeSeconds uint64
	// BackupMaxCount evicts backups once their count exceeds the limit.
	BackupMaxCount int
	// MaxGroupsPerTrack is informational: enforced by the cache manager
	// at insertion time, not by the policy.
	MaxGroupsPerTrack int
	// MaxFramesPerGroup is informational, same as MaxGroupsPerTrack.
	MaxFramesPerGroup int
	// MaxFrameSizeBytes rejects frames (and size-estimated groups)
	// strictly larger than the limit.
	MaxFrameSizeBytes uint64
}

// PatternBasedPolicy filters broadcasts by glob patterns and applies
// threshold rules to tracks, groups, frames and backups. Patterns are
// compiled once at construction; queries never fail.
type PatternBasedPolicy struct {
	cachePatterns   []glob.Glob
	excludePatterns []glob.Glob

	minTrackPriority    uint8
	backupMaxAgeSeconds uint64
	backupMaxCount      int
	maxGroupsPerTrack   int
	maxFramesPerGroup   int
	maxFrameSizeBytes   uint64
}

// NewPatternBased compiles opts into an immutable policy.
// A malformed glob is a configuration error reported here, never at query time.
func NewPatternBased(opts PatternOptions) (*PatternBasedPolicy, error) {
	cache, err := compilePatterns(opts.CachePatterns)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	return &PatternBasedPolicy{
		cachePatterns:       cache,
		excludePatterns:     exclude,
		minTrackPriority:    opts.MinTrackPriority,
		backupMaxAgeSeconds: opts.BackupMaxAgeSeconds,
		backupMaxCount:      opts.BackupMaxCount,
		maxGroupsPerTrack:   opts.MaxGroupsPerTrack,
		maxFramesPerGroup:   opts.MaxFramesPerGroup,
		maxFrameSizeBytes:   opts.MaxFrameSizeBytes,
	}, nil
}

func compilePatterns(raw []string) ([]glob.Glob, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	compiled := make([]glob.Glob, 0, len(raw))
	for _, p := range raw {
		g, err := glob.Compile(p, pathSeparator)
		if err != nil {
			return nil, fmt.Errorf("compile glob pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func matchesAny(path string, patterns []glob.Glob) bool {
	for _, g := range patterns {
		if g.Match(path) {
			return true
		}
	}
	return false
}

func (p *PatternBasedPolicy) ShouldCacheBroadcast(path string) Decision {
	// Exclude patterns win over cache patterns.
	if len(p.excludePatterns) > 0 && matchesAny(path, p.excludePatterns) {
		return NoCache
	}

	if matchesAny(path, p.cachePatterns) {
		return Cache
	}
	return NoCache
}

func (p *PatternBasedPolicy) ShouldCacheTrack(broadcastPath, _ string, priority uint8) Decision {
	// A track inside an uncached broadcast is never cached.
	if !p.ShouldCacheBroadcast(broadcastPath).ShouldCache() {
		return NoCache
	}

	if priority >= p.minTrackPriority {
		return Cache
	}
	return NoCache
}

func (p *PatternBasedPolicy) ShouldCacheGroup(_, estimatedSize uint64) Decision {
	// Group count limits are enforced by the cache manager at insertion
	// time; only the size estimate is judged here.
	if estimatedSize > 0 && p.maxFrameSizeBytes > 0 && estimatedSize > p.maxFrameSizeBytes {
		return NoCache
	}
	return Cache
}

func (p *PatternBasedPolicy) ShouldCacheFrame(frameSize uint64) Decision {
	if p.maxFrameSizeBytes > 0 && frameSize > p.maxFrameSizeBytes {
		return NoCache
	}
	return Cache
}

func (p *PatternBasedPolicy) ShouldKeepBackup(ageSeconds uint64, backupCount int) bool {
	// Age is inclusive: reaching the limit evicts exactly at the boundary
	// instead of one sweep late.
	if p.backupMaxAgeSeconds > 0 && ageSeconds >= p.backupMaxAgeSeconds {
		return false
	}

	// Count is exclusive: exactly at the limit is still kept.
	if p.backupMaxCount > 0 && backupCount > p.backupMaxCount {
		return false
	}

	return true
}
