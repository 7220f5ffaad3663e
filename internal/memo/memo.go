package memo

import (
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/P4sTela/moq-cache/config"
	"github.com/P4sTela/moq-cache/internal/policy"
)

// Policy wraps an immutable cache policy and memoizes its broadcast
// decisions. Broadcast queries are the only pattern-matching queries; the
// relay issues them on every publish and subscribe for a small set of live
// paths, so a bounded memo converts O(patterns) matching into a map hit.
//
// Decisions never change for the lifetime of the wrapped policy, so
// entries are never invalidated, only dropped when a shard fills up.
type Policy struct {
	inner       policy.Policy
	shards      []*shard
	mask        uint64
	maxPerShard int
}

// shard keeps decisions keyed by the low 64 bits of the path hash.
// The high bits are stored alongside to reject hash collisions.
type shard struct {
	sync.RWMutex
	decisions map[uint64]entry
}

type entry struct {
	hi       uint64
	decision policy.Decision
}

func New(cfg *config.MemoCfg, inner policy.Policy) *Policy {
	shards := ceilPow2(cfg.Shards)
	maxPerShard := cfg.MaxEntriesPerShard
	if maxPerShard < 1 {
		maxPerShard = 1
	}
	p := &Policy{
		inner:       inner,
		shards:      make([]*shard, shards),
		mask:        uint64(shards - 1),
		maxPerShard: maxPerShard,
	}
	for i := range p.shards {
		p.shards[i] = &shard{decisions: make(map[uint64]entry)}
	}
	return p
}

func ceilPow2(n int) int {
	if n < 1 {
		n = 1
	}
	v := 1
	for v < n {
		v <<= 1
	}
	return v
}

func (p *Policy) ShouldCacheBroadcast(path string) policy.Decision {
	h := xxh3.HashString128(path)
	sh := p.shards[h.Lo&p.mask]

	sh.RLock()
	e, ok := sh.decisions[h.Lo]
	sh.RUnlock()
	if ok && e.hi == h.Hi {
		return e.decision
	}

	d := p.inner.ShouldCacheBroadcast(path)

	sh.Lock()
	if len(sh.decisions) >= p.maxPerShard {
		// Full shard resets wholesale; entries are re-derived on demand.
		sh.decisions = make(map[uint64]entry, p.maxPerShard)
	}
	sh.decisions[h.Lo] = entry{hi: h.Hi, decision: d}
	sh.Unlock()

	return d
}

func (p *Policy) ShouldCacheTrack(broadcastPath, trackName string, priority uint8) policy.Decision {
	// Resolve the broadcast containment check through the memo before
	// delegating the priority judgement.
	if !p.ShouldCacheBroadcast(broadcastPath).ShouldCache() {
		return policy.NoCache
	}
	return p.inner.ShouldCacheTrack(broadcastPath, trackName, priority)
}

func (p *Policy) ShouldCacheGroup(sequence, estimatedSize uint64) policy.Decision {
	return p.inner.ShouldCacheGroup(sequence, estimatedSize)
}

func (p *Policy) ShouldCacheFrame(frameSize uint64) policy.Decision {
	return p.inner.ShouldCacheFrame(frameSize)
}

func (p *Policy) ShouldKeepBackup(ageSeconds uint64, backupCount int) bool {
	return p.inner.ShouldKeepBackup(ageSeconds, backupCount)
}

// Len reports the number of memoized decisions across all shards.
func (p *Policy) Len() int {
	var n int
	for _, sh := range p.shards {
		sh.RLock()
		n += len(sh.decisions)
		sh.RUnlock()
	}
	return n
}
