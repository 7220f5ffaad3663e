package policy

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func mustPatternBased(t *testing.T, opts PatternOptions) *PatternBasedPolicy {
	t.Helper()
	p, err := NewPatternBased(opts)
	require.NoError(t, err)
	return p
}

// TestPatternBased_CachePatterns verifies any-of matching over the include set.
func TestPatternBased_CachePatterns(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"live/**"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("live/stream1"))
	require.Equal(t, Cache, p.ShouldCacheBroadcast("live/region/stream1"))
	require.Equal(t, NoCache, p.ShouldCacheBroadcast("archive/stream1"))
}

// TestPatternBased_MatchEverything verifies the '**' pattern crosses
// path segment boundaries.
func TestPatternBased_MatchEverything(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"**"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("test"))
	require.Equal(t, Cache, p.ShouldCacheBroadcast("any/nested/path"))
}

// TestPatternBased_SingleSegmentWildcard verifies '*' stays within one
// path segment.
func TestPatternBased_SingleSegmentWildcard(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"live/*"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("live/stream1"))
	require.Equal(t, NoCache, p.ShouldCacheBroadcast("live/region/stream1"))
}

// TestPatternBased_ExcludePrecedence verifies an exclude match wins over
// any include match.
func TestPatternBased_ExcludePrecedence(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:   []string{"**"},
		ExcludePatterns: []string{"*/private/*"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("live/public/stream"))
	require.Equal(t, NoCache, p.ShouldCacheBroadcast("live/private/stream"))
}

// TestPatternBased_EmptyExcludeSet verifies that an empty exclude set never
// rejects anything.
func TestPatternBased_EmptyExcludeSet(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"**"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("live/private/stream"))
}

// TestPatternBased_NoIncludeMatch verifies rejection when no include
// pattern matches, even without excludes.
func TestPatternBased_NoIncludeMatch(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"live/**", "vod/**"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("vod/movie"))
	require.Equal(t, NoCache, p.ShouldCacheBroadcast("preview/movie"))
}

// TestPatternBased_TrackPriorityBoundary verifies the inclusive minimum
// priority bound.
func TestPatternBased_TrackPriorityBoundary(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:    []string{"**"},
		MinTrackPriority: 128,
	})

	require.Equal(t, Cache, p.ShouldCacheTrack("test", "video", 255))
	require.Equal(t, Cache, p.ShouldCacheTrack("test", "video", 128))
	require.Equal(t, NoCache, p.ShouldCacheTrack("test", "audio", 64))
	require.Equal(t, NoCache, p.ShouldCacheTrack("test", "audio", 127))
}

// TestPatternBased_TrackContainment verifies a track is never cached when
// its broadcast is rejected, whatever the priority.
func TestPatternBased_TrackContainment(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:   []string{"live/**"},
		ExcludePatterns: []string{"live/blocked/**"},
	})

	require.Equal(t, NoCache, p.ShouldCacheTrack("archive/stream", "video", 255))
	require.Equal(t, NoCache, p.ShouldCacheTrack("live/blocked/stream", "video", 255))
	require.Equal(t, Cache, p.ShouldCacheTrack("live/stream", "video", 0))
}

// TestPatternBased_GroupSizeLimit verifies the size estimate is judged
// against the frame size limit, strictly greater-than.
func TestPatternBased_GroupSizeLimit(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:     []string{"**"},
		MaxFrameSizeBytes: 1024,
	})

	require.Equal(t, Cache, p.ShouldCacheGroup(1, 512))
	require.Equal(t, Cache, p.ShouldCacheGroup(2, 1024))
	require.Equal(t, NoCache, p.ShouldCacheGroup(3, 1025))

	// Unknown size is always admitted.
	require.Equal(t, Cache, p.ShouldCacheGroup(4, 0))
}

// TestPatternBased_GroupSequenceIgnored verifies the sequence number has no
// bearing on the decision; count limits belong to the cache manager.
func TestPatternBased_GroupSequenceIgnored(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:     []string{"**"},
		MaxGroupsPerTrack: 1,
	})

	require.Equal(t, Cache, p.ShouldCacheGroup(0, 0))
	require.Equal(t, Cache, p.ShouldCacheGroup(1<<40, 0))
}

// TestPatternBased_FrameSizeBoundary verifies that equal-to-limit caches and
// one byte over rejects.
func TestPatternBased_FrameSizeBoundary(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:     []string{"**"},
		MaxFrameSizeBytes: 1024,
	})

	require.Equal(t, Cache, p.ShouldCacheFrame(512))
	require.Equal(t, Cache, p.ShouldCacheFrame(1024))
	require.Equal(t, NoCache, p.ShouldCacheFrame(1025))
	require.Equal(t, NoCache, p.ShouldCacheFrame(2048))
}

// TestPatternBased_FrameSizeUnlimited verifies zero means no limit.
func TestPatternBased_FrameSizeUnlimited(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"**"},
	})

	require.Equal(t, Cache, p.ShouldCacheFrame(1<<40))
}

// TestPatternBased_BackupAgeBoundary verifies age eviction is inclusive:
// reaching the limit evicts.
func TestPatternBased_BackupAgeBoundary(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:       []string{"**"},
		BackupMaxAgeSeconds: 300,
	})

	require.True(t, p.ShouldKeepBackup(299, 0))
	require.False(t, p.ShouldKeepBackup(300, 0))
	require.False(t, p.ShouldKeepBackup(400, 0))
}

// TestPatternBased_BackupCountBoundary verifies count eviction is exclusive:
// exactly at the limit keeps.
func TestPatternBased_BackupCountBoundary(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:  []string{"**"},
		BackupMaxCount: 5,
	})

	require.True(t, p.ShouldKeepBackup(0, 5))
	require.False(t, p.ShouldKeepBackup(0, 6))
}

// TestPatternBased_BackupUnlimited verifies zero limits keep everything.
func TestPatternBased_BackupUnlimited(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"**"},
	})

	require.True(t, p.ShouldKeepBackup(1<<40, 1<<20))
}

// TestPatternBased_BackupBothLimits verifies either limit alone evicts.
func TestPatternBased_BackupBothLimits(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns:       []string{"**"},
		BackupMaxAgeSeconds: 300,
		BackupMaxCount:      5,
	})

	require.True(t, p.ShouldKeepBackup(100, 3))
	require.False(t, p.ShouldKeepBackup(400, 3))
	require.False(t, p.ShouldKeepBackup(100, 6))
}

// TestPatternBased_CompileError verifies a malformed glob fails construction.
func TestPatternBased_CompileError(t *testing.T) {
	_, err := NewPatternBased(PatternOptions{
		CachePatterns: []string{"live/["},
	})
	require.Error(t, err)

	_, err = NewPatternBased(PatternOptions{
		CachePatterns:   []string{"**"},
		ExcludePatterns: []string{"["},
	})
	require.Error(t, err)
}

// TestPatternBased_CharacterClass verifies glob character class support.
func TestPatternBased_CharacterClass(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"live/stream[0-9]"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("live/stream1"))
	require.Equal(t, NoCache, p.ShouldCacheBroadcast("live/streamX"))
}

// TestPatternBased_QuestionMark verifies '?' matches exactly one character
// within a segment.
func TestPatternBased_QuestionMark(t *testing.T) {
	p := mustPatternBased(t, PatternOptions{
		CachePatterns: []string{"live/stream?"},
	})

	require.Equal(t, Cache, p.ShouldCacheBroadcast("live/stream1"))
	require.Equal(t, NoCache, p.ShouldCacheBroadcast("live/stream"))
	require.Equal(t, NoCache, p.ShouldCacheBroadcast("live/stream10"))
}
