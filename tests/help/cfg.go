package help

import (
	"time"

	"github.com/P4sTela/moq-cache/config"
)

// Cfg is a filtering relay configuration exercising every threshold.
func Cfg() *config.CachePolicy {
	c := &config.CachePolicy{
		Enabled: true,
		Broadcast: config.BroadcastCfg{
			CachePatterns:       []string{"live/**"},
			ExcludePatterns:     []string{"*/archive/*"},
			BackupMaxAgeSeconds: 300,
			BackupMaxCount:      3,
		},
		Track: config.TrackCfg{
			MaxTracksPerBroadcast: 10,
			MinPriority:           128,
		},
		Group: config.GroupCfg{
			MaxGroupsPerTrack: 1,
			MaxFramesPerGroup: 100,
		},
		Limits: config.LimitsCfg{
			MaxCacheSizeBytes:     100 * 1024 * 1024,
			MaxBroadcastSizeBytes: 10 * 1024 * 1024,
			MaxFrameSizeBytes:     1024 * 1024,
		},
	}
	c.AdjustConfig()
	return c
}

// PassthroughCfg is the historical default: cache everything.
func PassthroughCfg() *config.CachePolicy {
	return config.Default()
}

// DisabledCfg turns caching off globally while leaving filters set, to
// prove the kill switch ignores them.
func DisabledCfg() *config.CachePolicy {
	c := Cfg()
	c.Enabled = false
	return c
}

// TelemetryCfg layers decision telemetry over the filtering configuration.
func TelemetryCfg() *config.CachePolicy {
	c := Cfg()
	c.Telemetry = &config.TelemetryCfg{
		LogInterval:     time.Second,
		TraceRejections: true,
		TraceSampleN:    100,
	}
	c.AdjustConfig()
	return c
}

// MemoCfg layers broadcast decision memoization over the filtering
// configuration.
func MemoCfg() *config.CachePolicy {
	c := Cfg()
	c.Memo = &config.MemoCfg{
		Shards:             4,
		MaxEntriesPerShard: 64,
	}
	c.AdjustConfig()
	return c
}
