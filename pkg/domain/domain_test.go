package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/domain/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDealPricingOn(t *testing.T) {
	deal := domain.Deal{
		Pricing: []domain.DealPricing{
			{Date: date(2024, 1, 1), AdultPrice: 100, ChildPrice: 50},
			{Date: date(2024, 2, 1), AdultPrice: 120, ChildPrice: 60},
		},
	}

	t.Run("latest entry on or before booking date", func(t *testing.T) {
		p, ok := deal.PricingOn(date(2024, 1, 15))
		require.True(t, ok)
		assert.Equal(t, 100.0, p.AdultPrice)
	})

	t.Run("exact date match", func(t *testing.T) {
		p, ok := deal.PricingOn(date(2024, 2, 1))
		require.True(t, ok)
		assert.Equal(t, 120.0, p.AdultPrice)
	})

	t.Run("no entry in effect", func(t *testing.T) {
		_, ok := deal.PricingOn(date(2023, 12, 31))
		assert.False(t, ok)
	})
}

func TestDealNextAvailablePricing(t *testing.T) {
	deal := domain.Deal{
		Pricing: []domain.DealPricing{
			{Date: date(2024, 3, 1), AdultPrice: 130},
			{Date: date(2024, 2, 1), AdultPrice: 120},
			{Date: date(2024, 1, 1), AdultPrice: 100},
		},
	}

	// Earliest entry >= today, not the most recent.
	p, ok := deal.NextAvailablePricing(date(2024, 1, 15))
	require.True(t, ok)
	assert.Equal(t, 120.0, p.AdultPrice)

	_, ok = deal.NextAvailablePricing(date(2024, 4, 1))
	assert.False(t, ok)
}

func TestCartResumInvariant(t *testing.T) {
	now := time.Now().UTC()
	cart := domain.NewCart(uuid.New(), now, 24*time.Hour)

	adult, _ := money.New(100, currency.AED)
	child, _ := money.New(50, currency.AED)

	item := domain.CartItem{
		ActivityID:  uuid.New(),
		DealID:      uuid.New(),
		BookingDate: date(2024, 5, 1),
		Adults:      2,
		Children:    1,
		AdultPrice:  adult,
		ChildPrice:  child,
	}
	require.NoError(t, item.ComputeSubtotal())
	assert.InDelta(t, 250.0, item.Subtotal.Float64(), 1e-9)

	cart.Items = append(cart.Items, item, item)
	require.NoError(t, cart.Resum())
	assert.InDelta(t, 500.0, cart.TotalAmount.Float64(), 1e-9)

	cart.ClearItems()
	assert.True(t, cart.TotalAmount.IsZero())
	assert.Empty(t, cart.Items)
}

func TestBookingStatusMonotonic(t *testing.T) {
	assert.True(t, domain.BookingPending.CanTransitionTo(domain.BookingCompleted))
	assert.True(t, domain.BookingPending.CanTransitionTo(domain.BookingRejected))

	// Terminal states admit no further transitions.
	assert.False(t, domain.BookingCompleted.CanTransitionTo(domain.BookingRejected))
	assert.False(t, domain.BookingRejected.CanTransitionTo(domain.BookingCompleted))
	assert.False(t, domain.BookingCompleted.CanTransitionTo(domain.BookingPending))
	assert.False(t, domain.BookingPending.CanTransitionTo(domain.BookingPending))
}
