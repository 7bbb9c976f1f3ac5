package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain/money"
)

// CartItem is one bookable selection inside a cart: activity + deal + date +
// pax, with unit prices captured at add-time.
type CartItem struct {
	ActivityID   uuid.UUID   `json:"activityId"`
	DealID       uuid.UUID   `json:"dealId"`
	ActivityName string      `json:"activityName"`
	DealName     string      `json:"dealName"`
	BookingDate  time.Time   `json:"bookingDate"`
	Adults       int         `json:"adults"`
	Children     int         `json:"children"`
	AdultPrice   money.Money `json:"adultPrice"`
	ChildPrice   money.Money `json:"childPrice"`
	Subtotal     money.Money `json:"subtotal"`
}

// ComputeSubtotal recomputes the line subtotal from pax counts and unit prices.
func (i *CartItem) ComputeSubtotal() error {
	sub, err := i.AdultPrice.MulInt(i.Adults).Add(i.ChildPrice.MulInt(i.Children))
	if err != nil {
		return err
	}
	i.Subtotal = sub.Round()
	return nil
}

// Cart is a session-scoped cart document.
// Invariant: TotalAmount == sum of item subtotals after every mutation.
type Cart struct {
	ID          uuid.UUID
	Items       []CartItem
	TotalAmount money.Money
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCart creates an empty cart with a sliding expiry.
func NewCart(id uuid.UUID, now time.Time, ttl time.Duration) *Cart {
	return &Cart{
		ID:          id,
		Items:       []CartItem{},
		TotalAmount: money.Zero(""),
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IndexOf returns the index of the line keyed by (activity, deal, date), or -1.
// Re-adding the same triple replaces the line rather than duplicating it.
func (c *Cart) IndexOf(activityID, dealID uuid.UUID, date time.Time) int {
	for i, item := range c.Items {
		if item.ActivityID == activityID && item.DealID == dealID && item.BookingDate.Equal(date) {
			return i
		}
	}
	return -1
}

// Resum recomputes TotalAmount by full resummation of item subtotals. Totals
// are never maintained incrementally, to avoid drift.
func (c *Cart) Resum() error {
	total := money.Zero("")
	for i, item := range c.Items {
		if i == 0 {
			total = money.Zero(item.Subtotal.Currency())
		}
		sum, err := total.Add(item.Subtotal)
		if err != nil {
			return err
		}
		total = sum
	}
	c.TotalAmount = total
	return nil
}

// Expired reports whether the cart's sliding expiry window has passed.
func (c *Cart) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// Touch slides the expiry window and bumps UpdatedAt.
func (c *Cart) Touch(now time.Time, ttl time.Duration) {
	c.ExpiresAt = now.Add(ttl)
	c.UpdatedAt = now
}

// ClearItems empties the cart and zeroes the total. The cart document itself
// is kept.
func (c *Cart) ClearItems() {
	c.Items = []CartItem{}
	c.TotalAmount = money.Zero(c.TotalAmount.Currency())
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
