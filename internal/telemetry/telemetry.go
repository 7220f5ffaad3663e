package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/P4sTela/moq-cache/config"
	"github.com/P4sTela/moq-cache/internal/policy"
)

// Policy wraps an inner cache policy and counts every decision it makes.
// Counters are atomics, so the wrapped policy stays safe for concurrent
// readers; aggregated deltas are logged on a fixed interval until Close.
//
// When rejection tracing is enabled, each rejected item is additionally
// logged at debug level through a sampled zerolog logger, cheap enough for
// the per-frame path.
type Policy struct {
	inner    policy.Policy
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
	trace    *zerolog.Logger
	counters *counters
	interval time.Duration
}

func New(ctx context.Context, cfg *config.TelemetryCfg, logger *slog.Logger, inner policy.Policy) *Policy {
	ctx, cancel := context.WithCancel(ctx)

	interval := cfg.LogInterval
	if interval <= 0 {
		interval = time.Second
	}

	p := &Policy{
		inner:    inner,
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		trace:    newTraceLogger(cfg),
		counters: &counters{},
		interval: interval,
	}
	go p.loop()
	return p
}

func newTraceLogger(cfg *config.TelemetryCfg) *zerolog.Logger {
	if !cfg.TraceRejections {
		return nil
	}
	n := cfg.TraceSampleN
	if n == 0 {
		n = 1
	}
	l := zlog.Logger.Sample(&zerolog.BasicSampler{N: n})
	return &l
}

func (p *Policy) Interval() time.Duration {
	return p.interval
}

func (p *Policy) Close() error {
	p.cancel()
	return nil
}

func (p *Policy) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	prev := p.counters.snapshot()

	for {
		select {
		case <-p.ctx.Done():
			return

		case <-ticker.C:
			cur := p.counters.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			p.logger.Info("cache_policy",
				"interval", p.interval.String(),
				"broadcast_cached", d.broadcastCached,
				"broadcast_rejected", d.broadcastRejected,
				"track_cached", d.trackCached,
				"track_rejected", d.trackRejected,
				"group_cached", d.groupCached,
				"group_rejected", d.groupRejected,
				"frame_cached", d.frameCached,
				"frame_rejected", d.frameRejected,
				"backup_kept", d.backupKept,
				"backup_evicted", d.backupEvicted,
			)
		}
	}
}

func (p *Policy) ShouldCacheBroadcast(path string) policy.Decision {
	d := p.inner.ShouldCacheBroadcast(path)
	if d.ShouldCache() {
		p.counters.broadcastCached.Add(1)
	} else {
		p.counters.broadcastRejected.Add(1)
		if p.trace != nil {
			p.trace.Debug().Str("level", "broadcast").Str("path", path).Msg("cache rejected")
		}
	}
	return d
}

func (p *Policy) ShouldCacheTrack(broadcastPath, trackName string, priority uint8) policy.Decision {
	d := p.inner.ShouldCacheTrack(broadcastPath, trackName, priority)
	if d.ShouldCache() {
		p.counters.trackCached.Add(1)
	} else {
		p.counters.trackRejected.Add(1)
		if p.trace != nil {
			p.trace.Debug().
				Str("level", "track").
				Str("path", broadcastPath).
				Str("track", trackName).
				Uint8("priority", priority).
				Msg("cache rejected")
		}
	}
	return d
}

func (p *Policy) ShouldCacheGroup(sequence, estimatedSize uint64) policy.Decision {
	d := p.inner.ShouldCacheGroup(sequence, estimatedSize)
	if d.ShouldCache() {
		p.counters.groupCached.Add(1)
	} else {
		p.counters.groupRejected.Add(1)
		if p.trace != nil {
			p.trace.Debug().
				Str("level", "group").
				Uint64("sequence", sequence).
				Uint64("estimated_size", estimatedSize).
				Msg("cache rejected")
		}
	}
	return d
}

func (p *Policy) ShouldCacheFrame(frameSize uint64) policy.Decision {
	d := p.inner.ShouldCacheFrame(frameSize)
	if d.ShouldCache() {
		p.counters.frameCached.Add(1)
	} else {
		p.counters.frameRejected.Add(1)
		if p.trace != nil {
			p.trace.Debug().Str("level", "frame").Uint64("size", frameSize).Msg("cache rejected")
		}
	}
	return d
}

func (p *Policy) ShouldKeepBackup(ageSeconds uint64, backupCount int) bool {
	keep := p.inner.ShouldKeepBackup(ageSeconds, backupCount)
	if keep {
		p.counters.backupKept.Add(1)
	} else {
		p.counters.backupEvicted.Add(1)
		if p.trace != nil {
			p.trace.Debug().
				Str("level", "backup").
				Uint64("age_seconds", ageSeconds).
				Int("count", backupCount).
				Msg("backup evicted")
		}
	}
	return keep
}
