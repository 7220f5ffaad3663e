package policy

// AlwaysCachePolicy admits everything and keeps every backup.
// It is the zero-cost default when no filtering is configured.
type AlwaysCachePolicy struct{}

func (AlwaysCachePolicy) ShouldCacheBroadcast(string) Decision {
	return Cache
}

func (AlwaysCachePolicy) ShouldCacheTrack(string, string, uint8) Decision {
	return Cache
}

func (AlwaysCachePolicy) ShouldCacheGroup(uint64, uint64) Decision {
	return Cache
}

func (AlwaysCachePolicy) ShouldCacheFrame(uint64) Decision {
	return Cache
}

// ShouldKeepBackup always keeps backups.
func (AlwaysCachePolicy) ShouldKeepBackup(uint64, int) bool {
	return true
}
