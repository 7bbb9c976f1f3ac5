// Package pricing converts monetary amounts between currencies and applies
// that conversion uniformly across every priced entity shape in the catalog.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/domain/money"
	"github.com/tripmena/backend/pkg/exchange"
)

// Converter converts amounts between currencies using the cached rate table.
// All routing goes through the base currency: a direct cross rate would
// silently diverge from the two-hop result at the rounding step.
type Converter struct {
	rates *exchange.Cache
}

// NewConverter creates a Converter over the given rate cache.
func NewConverter(rates *exchange.Cache) *Converter {
	return &Converter{rates: rates}
}

// Base returns the base currency of the underlying rate table.
func (c *Converter) Base() currency.Code {
	return c.rates.Base()
}

// Convert converts amount from one currency to another.
//
// Rules:
//   - from == to: identity, returned unchanged with no rounding.
//   - from == base: multiply by rates[to].
//   - to == base: divide by rates[from].
//   - otherwise: two hops via base. The intermediate base amount is rounded
//     before the second hop, so round-trips reproduce the input only within
//     rounding tolerance.
//
// Every hop is rounded to 2 decimal places, half away from zero. A code
// absent from the rate table yields ErrUnknownCurrency.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to currency.Code) (float64, error) {
	if from == "" {
		from = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(to)) {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, to)
	}
	if from == to {
		return amount, nil
	}

	rates := c.rates.Rates(ctx)
	base := c.rates.Base()

	d := decimal.NewFromFloat(amount)
	if from != base {
		rate, ok := rates[from]
		if !ok {
			return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, from)
		}
		d = d.Div(decimal.NewFromFloat(rate)).Round(2)
	}
	if to != base {
		rate, ok := rates[to]
		if !ok {
			return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, to)
		}
		d = d.Mul(decimal.NewFromFloat(rate)).Round(2)
	}

	out, _ := d.Float64()
	return out, nil
}

// ConvertMoney converts a tagged Money value to the target currency. An empty
// target leaves the value untouched.
func (c *Converter) ConvertMoney(ctx context.Context, m money.Money, to currency.Code) (money.Money, error) {
	if to == "" || to == m.Currency() {
		return m, nil
	}
	amount, err := c.Convert(ctx, m.Float64(), m.Currency(), to)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(amount, to)
}
