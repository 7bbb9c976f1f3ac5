package pricing

import (
	"context"
	"time"

	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/dto"
)

const dateLayout = "2006-01-02"

// Defaults carries the configured fallback base currencies per entity family.
// They apply only when an entity carries no base currency tag of its own.
type Defaults struct {
	Activity currency.Code
	Package  currency.Code
}

// Normalizer walks a priced entity, converts every money field to the target
// currency, and emits a cleaned, currency-tagged projection. One entry point
// per entity shape, all sharing the same field traversal.
type Normalizer struct {
	conv     *Converter
	defaults Defaults
	now      func() time.Time
}

// NormalizerOption customizes a Normalizer.
type NormalizerOption func(*Normalizer)

// WithClock injects a clock for deterministic display-price selection in tests.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) { n.now = now }
}

// NewNormalizer creates a Normalizer over conv with the given defaults.
func NewNormalizer(conv *Converter, defaults Defaults, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{conv: conv, defaults: defaults, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// convertAll runs every listed money field through the converter in place.
// Ratios (percentages) must not be listed here; only money fields are.
func (n *Normalizer) convertAll(ctx context.Context, from, to currency.Code, fields ...*float64) error {
	for _, f := range fields {
		v, err := n.conv.Convert(ctx, *f, from, to)
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}

// target resolves the display currency: an empty request means "as stored".
func target(to, from currency.Code) currency.Code {
	if to == "" {
		return from
	}
	return to
}

// Activity normalizes a single activity. CostPrice is converted even though
// it is never shown to end customers; internal reporting reads it.
func (n *Normalizer) Activity(ctx context.Context, a domain.Activity, to currency.Code) (*dto.ActivityRead, error) {
	from := a.Currency(n.defaults.Activity)
	to = target(to, from)

	out := &dto.ActivityRead{
		ID:            a.ID,
		Name:          a.Name,
		Description:   a.Description,
		City:          a.City,
		OriginalPrice: a.OriginalPrice,
		DiscountPrice: a.DiscountPrice,
		CostPrice:     a.CostPrice,
		Currency:      string(to),
	}
	if err := n.convertAll(ctx, from, to, &out.OriginalPrice, &out.DiscountPrice, &out.CostPrice); err != nil {
		return nil, err
	}
	return out, nil
}

// Deal normalizes a deal. Pricing is dated and each entry is converted
// independently. The display price is the earliest entry dated today or
// later; left null when only past entries exist.
func (n *Normalizer) Deal(ctx context.Context, d domain.Deal, to currency.Code) (*dto.DealRead, error) {
	from := d.Currency(n.defaults.Activity)
	to = target(to, from)

	out := &dto.DealRead{
		ID:          d.ID,
		ActivityID:  d.ActivityID,
		Name:        d.Name,
		Description: d.Description,
		Pricing:     make([]dto.DealPricingRead, 0, len(d.Pricing)),
		Currency:    string(to),
	}
	for _, p := range d.SortedPricing() {
		entry := dto.DealPricingRead{
			Date:       p.Date.Format(dateLayout),
			AdultPrice: p.AdultPrice,
			ChildPrice: p.ChildPrice,
		}
		if err := n.convertAll(ctx, from, to, &entry.AdultPrice, &entry.ChildPrice); err != nil {
			return nil, err
		}
		out.Pricing = append(out.Pricing, entry)
	}

	today := n.now().UTC().Truncate(24 * time.Hour)
	if p, ok := d.NextAvailablePricing(today); ok {
		display := dto.DealPricingRead{
			Date:       p.Date.Format(dateLayout),
			AdultPrice: p.AdultPrice,
			ChildPrice: p.ChildPrice,
		}
		if err := n.convertAll(ctx, from, to, &display.AdultPrice, &display.ChildPrice); err != nil {
			return nil, err
		}
		out.DisplayPrice = &display
	}
	return out, nil
}

// HolidayPackage normalizes a package and recurses into each day's nested
// activities using that activity's own base currency, which may differ from
// the package's. Conversions are never assumed uniform across the structure.
func (n *Normalizer) HolidayPackage(ctx context.Context, p domain.HolidayPackage, to currency.Code) (*dto.PackageRead, error) {
	from := p.Currency(n.defaults.Package)
	to = target(to, from)

	out := &dto.PackageRead{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Nights:        p.Nights,
		OriginalPrice: p.OriginalPrice,
		DiscountPrice: p.DiscountPrice,
		Itinerary:     make([]dto.PackageDayRead, 0, len(p.Itinerary)),
		Currency:      string(to),
	}
	if err := n.convertAll(ctx, from, to, &out.OriginalPrice, &out.DiscountPrice); err != nil {
		return nil, err
	}

	for _, day := range p.Itinerary {
		dayOut := dto.PackageDayRead{
			Day:        day.Day,
			Title:      day.Title,
			Activities: make([]dto.ActivityRead, 0, len(day.Activities)),
		}
		for _, act := range day.Activities {
			actOut, err := n.Activity(ctx, act, to)
			if err != nil {
				return nil, err
			}
			dayOut.Activities = append(dayOut.Activities, *actOut)
		}
		out.Itinerary = append(out.Itinerary, dayOut)
	}
	return out, nil
}

// ComboOffer normalizes a combo offer. The offer-level ComboDiscount is money
// only when DiscountType is flat; a percentage is a ratio and passes through
// unconverted.
func (n *Normalizer) ComboOffer(ctx context.Context, c domain.ComboOffer, to currency.Code) (*dto.ComboRead, error) {
	from := c.Currency(n.defaults.Activity)
	to = target(to, from)

	out := &dto.ComboRead{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Activities:    make([]dto.ComboActivityRead, 0, len(c.Activities)),
		ComboDiscount: c.ComboDiscount,
		DiscountType:  string(c.DiscountType),
		Currency:      string(to),
	}
	for _, a := range c.Activities {
		sub := dto.ComboActivityRead{
			ActivityID:  a.ActivityID,
			Name:        a.Name,
			Discount:    a.Discount,
			LowestPrice: a.LowestPrice,
		}
		if err := n.convertAll(ctx, from, to, &sub.Discount, &sub.LowestPrice); err != nil {
			return nil, err
		}
		out.Activities = append(out.Activities, sub)
	}
	if c.DiscountType == domain.DiscountFlat {
		if err := n.convertAll(ctx, from, to, &out.ComboDiscount); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Cart normalizes a cart: every line's unit prices and subtotal plus the cart
// total are converted to the display currency.
func (n *Normalizer) Cart(ctx context.Context, cart *domain.Cart, to currency.Code) (*dto.CartRead, error) {
	out := &dto.CartRead{
		ID:        cart.ID,
		Items:     make([]dto.CartItemRead, 0, len(cart.Items)),
		ExpiresAt: cart.ExpiresAt,
	}
	for _, item := range cart.Items {
		adult, err := n.conv.ConvertMoney(ctx, item.AdultPrice, to)
		if err != nil {
			return nil, err
		}
		child, err := n.conv.ConvertMoney(ctx, item.ChildPrice, to)
		if err != nil {
			return nil, err
		}
		sub, err := n.conv.ConvertMoney(ctx, item.Subtotal, to)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, dto.CartItemRead{
			ActivityID:   item.ActivityID,
			DealID:       item.DealID,
			ActivityName: item.ActivityName,
			DealName:     item.DealName,
			BookingDate:  item.BookingDate.Format(dateLayout),
			Adults:       item.Adults,
			Children:     item.Children,
			AdultPrice:   adult,
			ChildPrice:   child,
			Subtotal:     sub,
		})
	}
	total, err := n.conv.ConvertMoney(ctx, cart.TotalAmount, to)
	if err != nil {
		return nil, err
	}
	out.TotalAmount = total
	return out, nil
}
