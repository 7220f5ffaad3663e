package telemetry

import "sync/atomic"

type counters struct {
	broadcastCached   atomic.Int64
	broadcastRejected atomic.Int64
	trackCached       atomic.Int64
	trackRejected     atomic.Int64
	groupCached       atomic.Int64
	groupRejected     atomic.Int64
	frameCached       atomic.Int64
	frameRejected     atomic.Int64
	backupKept        atomic.Int64
	backupEvicted     atomic.Int64
}

// snapshot holds cumulative counter values (monotonic).
type snapshot struct {
	broadcastCached   int64
	broadcastRejected int64
	trackCached       int64
	trackRejected     int64
	groupCached       int64
	groupRejected     int64
	frameCached       int64
	frameRejected     int64
	backupKept        int64
	backupEvicted     int64
}

func (c *counters) snapshot() snapshot {
	return snapshot{
		broadcastCached:   c.broadcastCached.Load(),
		broadcastRejected: c.broadcastRejected.Load(),
		trackCached:       c.trackCached.Load(),
		trackRejected:     c.trackRejected.Load(),
		groupCached:       c.groupCached.Load(),
		groupRejected:     c.groupRejected.Load(),
		frameCached:       c.frameCached.Load(),
		frameRejected:     c.frameRejected.Load(),
		backupKept:        c.backupKept.Load(),
		backupEvicted:     c.backupEvicted.Load(),
	}
}

func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		broadcastCached:   cur.broadcastCached - prev.broadcastCached,
		broadcastRejected: cur.broadcastRejected - prev.broadcastRejected,
		trackCached:       cur.trackCached - prev.trackCached,
		trackRejected:     cur.trackRejected - prev.trackRejected,
		groupCached:       cur.groupCached - prev.groupCached,
		groupRejected:     cur.groupRejected - prev.groupRejected,
		frameCached:       cur.frameCached - prev.frameCached,
		frameRejected:     cur.frameRejected - prev.frameRejected,
		backupKept:        cur.backupKept - prev.backupKept,
		backupEvicted:     cur.backupEvicted - prev.backupEvicted,
	}
}
