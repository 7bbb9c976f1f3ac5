package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/tripmena/backend/pkg/currency"
)

// Cache is the single source of truth for "current rates". It wraps a Source
// with a time-boxed store and a static fallback.
//
// The check-and-refresh is deliberately not mutex-serialized across callers:
// two requests hitting the stale window may both trigger a refresh. Refreshes
// are idempotent and tables are read-only once fetched, so the last writer
// wins without corruption.
type Cache struct {
	source Source
	store  Store
	base   currency.Code
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock injects a clock, used by tests to exercise TTL expiry without
// wall-clock sleeps.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a rate cache over source and store for the given base
// currency and TTL. Construct once at process start and pass by reference.
func NewCache(
	source Source,
	store Store,
	base currency.Code,
	ttl time.Duration,
	logger *slog.Logger,
	opts ...CacheOption,
) *Cache {
	c := &Cache{
		source: source,
		store:  store,
		base:   base,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the base currency the table is expressed against.
func (c *Cache) Base() currency.Code {
	return c.base
}

// Rates returns the current rate table, refreshing it when stale. It never
// fails: a failed refresh serves the last-known-good snapshot, and when none
// exists the static fallback table.
func (c *Cache) Rates(ctx context.Context) RateTable {
	snap, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("rate store read failed", "error", err)
		snap = nil
	}
	if snap != nil && c.now().Sub(snap.FetchedAt) <= c.ttl {
		return snap.Table
	}

	table, err := c.source.Fetch(ctx, c.base)
	if err == nil {
		table[c.base] = 1
		fresh := &Snapshot{
			Base:      c.base,
			Table:     table,
			FetchedAt: c.now(),
			Source:    c.source.Name(),
		}
		if err := c.store.Set(ctx, fresh); err != nil {
			c.logger.Warn("rate store write failed", "error", err)
		}
		c.logger.Info("exchange rates refreshed",
			"source", c.source.Name(),
			"base", c.base,
			"currencies", len(table),
		)
		return table
	}

	if snap != nil {
		c.logger.Warn("rate refresh failed, serving stale snapshot",
			"error", err,
			"fetched_at", snap.FetchedAt,
		)
		return snap.Table
	}

	c.logger.Error("rate refresh failed with no snapshot, serving static fallback", "error", err)
	return FallbackTable(c.base)
}
