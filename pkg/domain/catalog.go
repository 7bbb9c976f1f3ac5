// Package domain holds the catalog, cart and booking types of the
// travel-commerce core, together with the error taxonomy shared by services
// and the HTTP layer.
package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/currency"
)

// Activity is a bookable activity. Price fields are persisted in the
// activity's BaseCurrency; normalization converts them on the way out and
// never mutates the stored values.
type Activity struct {
	ID            uuid.UUID
	Name          string
	Description   string
	City          string
	OriginalPrice float64
	DiscountPrice float64
	// CostPrice is the supplier cost. Not shown to customers but still
	// converted for internal reporting paths.
	CostPrice    float64
	BaseCurrency currency.Code
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Currency returns the stored base currency, falling back to def when the
// entity carries no tag. Different entity types use different stored base
// currencies, so callers must not assume a single constant.
func (a Activity) Currency(def currency.Code) currency.Code {
	if a.BaseCurrency != "" {
		return a.BaseCurrency
	}
	return def
}

// DealPricing is one dated pricing entry. A deal's price is only defined per
// date; there is no single "the price".
type DealPricing struct {
	Date       time.Time
	AdultPrice float64
	ChildPrice float64
}

// Deal is a dated offer on an activity with a list of pricing entries.
type Deal struct {
	ID           uuid.UUID
	ActivityID   uuid.UUID
	Name         string
	Description  string
	Pricing      []DealPricing
	BaseCurrency currency.Code
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Currency returns the stored base currency or def.
func (d Deal) Currency(def currency.Code) currency.Code {
	if d.BaseCurrency != "" {
		return d.BaseCurrency
	}
	return def
}

// PricingOn returns the pricing entry in effect on the booking date: the
// latest entry with Date <= date. The second return is false when no entry
// is in effect on or before that date.
func (d Deal) PricingOn(date time.Time) (DealPricing, bool) {
	var best DealPricing
	found := false
	for _, p := range d.Pricing {
		if p.Date.After(date) {
			continue
		}
		if !found || p.Date.After(best.Date) {
			best = p
			found = true
		}
	}
	return best, found
}

// NextAvailablePricing returns the display price when no date was requested:
// the entry with the earliest date >= today (earliest-available policy).
func (d Deal) NextAvailablePricing(today time.Time) (DealPricing, bool) {
	var best DealPricing
	found := false
	for _, p := range d.Pricing {
		if p.Date.Before(today) {
			continue
		}
		if !found || p.Date.Before(best.Date) {
			best = p
			found = true
		}
	}
	return best, found
}

// SortedPricing returns the pricing entries ordered by date ascending.
func (d Deal) SortedPricing() []DealPricing {
	out := make([]DealPricing, len(d.Pricing))
	copy(out, d.Pricing)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// PackageDay is one day of a holiday package itinerary. It embeds full
// activity documents whose base currencies may differ from the package's.
type PackageDay struct {
	Day        int
	Title      string
	Activities []Activity
}

// HolidayPackage is a multi-day itinerary. Packages are persisted in USD in
// this deployment while their nested activities remain in their own base
// currencies.
type HolidayPackage struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Nights        int
	OriginalPrice float64
	DiscountPrice float64
	BaseCurrency  currency.Code
	Itinerary     []PackageDay
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Currency returns the stored base currency or def.
func (p HolidayPackage) Currency(def currency.Code) currency.Code {
	if p.BaseCurrency != "" {
		return p.BaseCurrency
	}
	return def
}

// DiscountType discriminates whether a combo discount value is a percentage
// (a dimensionless ratio, never converted) or a flat amount (money, converted
// like any other price field). Mixing the two up is a correctness bug.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// ComboActivity is a sub-activity inside a combo offer with its own discount
// and lowest price.
type ComboActivity struct {
	ActivityID  uuid.UUID
	Name        string
	Discount    float64
	LowestPrice float64
}

// ComboOffer bundles several activities with an offer-level discount.
type ComboOffer struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Activities    []ComboActivity
	ComboDiscount float64
	DiscountType  DiscountType
	BaseCurrency  currency.Code
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Currency returns the stored base currency or def.
func (c ComboOffer) Currency(def currency.Code) currency.Code {
	if c.BaseCurrency != "" {
		return c.BaseCurrency
	}
	return def
}
