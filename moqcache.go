package moqcache

import (
	"context"
	"io"
	"log/slog"

	"github.com/P4sTela/moq-cache/config"
	"github.com/P4sTela/moq-cache/internal/memo"
	"github.com/P4sTela/moq-cache/internal/policy"
	"github.com/P4sTela/moq-cache/internal/telemetry"
)

// CacheDecision is the outcome of a policy query.
type CacheDecision = policy.Decision

const (
	Cache   = policy.Cache
	NoCache = policy.NoCache
)

// CachePolicy is the decision surface the relay cache manager consults
// before admitting a broadcast, track, group or frame into cache, and
// before evicting aged-out backup broadcasts. Implementations are
// immutable and safe to share across workers without locks; reconfiguring
// means building a new instance and swapping the shared reference.
type CachePolicy = policy.Policy

// Variant types, for callers selecting a policy without a config record.
type (
	AlwaysCachePolicy  = policy.AlwaysCachePolicy
	NeverCachePolicy   = policy.NeverCachePolicy
	PatternBasedPolicy = policy.PatternBasedPolicy
	PatternOptions     = policy.PatternOptions
)

// NewPatternBased compiles a pattern-based policy from raw rules.
func NewPatternBased(opts PatternOptions) (*PatternBasedPolicy, error) {
	return policy.NewPatternBased(opts)
}

// Build selects the bare policy variant for cfg, with no memoization or
// telemetry attached. The only possible error is glob compilation.
func Build(cfg *config.CachePolicy) (CachePolicy, error) {
	return policy.Build(cfg)
}

// Engine is a built cache policy plus its optional background telemetry.
type Engine struct {
	CachePolicy
	cls     context.CancelFunc
	closers []io.Closer
}

// New builds the policy variant selected by cfg and layers the memoization
// and telemetry wrappers on top when their config sections are present.
func New(ctx context.Context, cfg *config.CachePolicy, logger *slog.Logger) (*Engine, error) {
	ctx, cancel := context.WithCancel(ctx)

	p, err := policy.Build(cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	if cfg.Memo.Enabled() {
		p = memo.New(cfg.Memo, p)
	}

	var closers []io.Closer
	if cfg.Telemetry.Enabled() {
		tp := telemetry.New(ctx, cfg.Telemetry, logger, p)
		closers = append(closers, tp)
		p = tp
	}

	return &Engine{CachePolicy: p, cls: cancel, closers: closers}, nil
}

// Close stops the telemetry loop. Queries remain valid after Close.
func (e *Engine) Close() error {
	e.cls()
	for _, c := range e.closers {
		_ = c.Close()
	}
	return nil
}
