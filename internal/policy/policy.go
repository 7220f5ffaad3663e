package policy

// Policy decides whether broadcasts, tracks, groups and frames should be
// retained in the relay's upstream cache, and whether aged-out backup
// broadcasts should be kept. Implementations are immutable after
// construction and safe for concurrent readers without synchronization.
//
// Every query is a total, synchronous function: no I/O, no blocking, no
// mutation. The caller supplies all run-time measurements (ages, counts,
// sizes); the policy only judges them.
type Policy interface {
	// ShouldCacheBroadcast decides whether a broadcast identified by its
	// hierarchical path is admitted into the cache.
	ShouldCacheBroadcast(path string) Decision

	// ShouldCacheTrack decides whether a track within a broadcast is
	// admitted. A track is never cached when its broadcast is not.
	// trackName is reserved for per-track rules and is not filtered on yet.
	ShouldCacheTrack(broadcastPath, trackName string, priority uint8) Decision

	// ShouldCacheGroup decides whether a group of frames is admitted.
	// estimatedSize of zero means the size is unknown; group count limits
	// are enforced by the cache manager at insertion time, not here.
	ShouldCacheGroup(sequence, estimatedSize uint64) Decision

	// ShouldCacheFrame decides whether a single frame is admitted.
	ShouldCacheFrame(frameSize uint64) Decision

	// ShouldKeepBackup reports whether a backup broadcast of the given age
	// should survive the periodic sweep, given how many backups exist.
	ShouldKeepBackup(ageSeconds uint64, backupCount int) bool
}
