package policy

// NeverCachePolicy rejects everything and keeps no backups.
// Used when caching is disabled globally (memory saving mode).
type NeverCachePolicy struct{}

func (NeverCachePolicy) ShouldCacheBroadcast(string) Decision {
	return NoCache
}

func (NeverCachePolicy) ShouldCacheTrack(string, string, uint8) Decision {
	return NoCache
}

func (NeverCachePolicy) ShouldCacheGroup(uint64, uint64) Decision {
	return NoCache
}

func (NeverCachePolicy) ShouldCacheFrame(uint64) Decision {
	return NoCache
}

// ShouldKeepBackup never keeps backups.
func (NeverCachePolicy) ShouldKeepBackup(uint64, int) bool {
	return false
}
