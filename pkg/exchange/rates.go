// Package exchange owns the current exchange-rate table: fetching it from a
// source, caching it on a TTL, and serving last-known-good data when a
// refresh fails. Pricing must always resolve to some number, so Rates never
// returns an error to its callers.
package exchange

import (
	"context"
	"time"

	"github.com/tripmena/backend/pkg/currency"
)

// RateTable maps a currency code to units of that currency per one unit of
// the base currency. The base currency always maps to 1. Tables are replaced
// wholesale on refresh and never partially mutated.
type RateTable map[currency.Code]float64

// Has reports whether the table carries a rate for code.
func (t RateTable) Has(code currency.Code) bool {
	_, ok := t[code]
	return ok
}

// Clone returns a copy so cached tables stay read-only.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Snapshot is a rate table plus its fetch timestamp.
type Snapshot struct {
	Base      currency.Code `json:"base"`
	Table     RateTable     `json:"table"`
	FetchedAt time.Time     `json:"fetchedAt"`
	Source    string        `json:"source"`
}

// Source fetches a full rate table for a base currency from an external
// provider.
type Source interface {
	// Fetch returns units-of-CUR-per-1-BASE for every supported currency.
	Fetch(ctx context.Context, base currency.Code) (RateTable, error)
	Name() string
}

// Store persists the current snapshot between refreshes.
type Store interface {
	Get(ctx context.Context) (*Snapshot, error)
	Set(ctx context.Context, snap *Snapshot) error
}

// fallbackTables are served when the source fails and no previous snapshot
// exists. Rates as of early 2024; close enough for a degraded mode that must
// still produce a price.
var fallbackTables = map[currency.Code]RateTable{
	currency.AED: {
		currency.AED: 1,
		currency.USD: 0.27,
		currency.EUR: 0.25,
		currency.GBP: 0.21,
		currency.SAR: 1.02,
		currency.INR: 22.65,
	},
	currency.USD: {
		currency.USD: 1,
		currency.AED: 3.67,
		currency.EUR: 0.92,
		currency.GBP: 0.79,
		currency.SAR: 3.75,
		currency.INR: 83.10,
	},
}

// FallbackTable returns the static table for base, or an identity table when
// no static data is bundled for that base.
func FallbackTable(base currency.Code) RateTable {
	if t, ok := fallbackTables[base]; ok {
		return t.Clone()
	}
	return RateTable{base: 1}
}
