package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tripmena/backend/internal/fixtures/mocks"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/service/cart"

	"log/slog"
)

var fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func newService(uow *mocks.UnitOfWork) *cart.Service {
	return cart.New(uow, 24*time.Hour, currency.AED, slog.Default(),
		cart.WithClock(func() time.Time { return fixedNow }))
}

func fixtureCatalog(repo *mocks.CatalogRepository) (activity *domain.Activity, deal *domain.Deal) {
	activity = &domain.Activity{ID: uuid.New(), Name: "Desert Safari", BaseCurrency: currency.AED}
	deal = &domain.Deal{
		ID:         uuid.New(),
		ActivityID: activity.ID,
		Name:       "Evening Deal",
		Pricing: []domain.DealPricing{
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), AdultPrice: 100, ChildPrice: 50},
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), AdultPrice: 120, ChildPrice: 60},
		},
		BaseCurrency: currency.AED,
	}
	repo.On("GetActivity", mock.Anything, activity.ID).Return(activity, nil)
	repo.On("GetDeal", mock.Anything, deal.ID).Return(deal, nil)
	return activity, deal
}

func existingCart(uow *mocks.UnitOfWork, id uuid.UUID) *domain.Cart {
	c := domain.NewCart(id, fixedNow.Add(-time.Hour), 24*time.Hour)
	uow.CartRepo.On("Get", mock.Anything, id).Return(c, nil)
	uow.CartRepo.On("Save", mock.Anything, c).Return(nil)
	return c
}

func TestAddItemPricesFromDealEntryInEffect(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	_, deal := fixtureCatalog(uow.CatalogRepo)
	cartID := uuid.New()
	c := existingCart(uow, cartID)
	svc := newService(uow)

	// Booking date 2024-01-15: the 2024-01-01 entry is in effect, not 2024-02-01.
	got, err := svc.AddItem(context.Background(), cartID, cart.AddItemParams{
		ActivityID:  deal.ActivityID,
		DealID:      deal.ID,
		BookingDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Adults:      2,
		Children:    1,
	})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.InDelta(t, 100.0, got.Items[0].AdultPrice.Float64(), 1e-9)
	assert.InDelta(t, 250.0, got.Items[0].Subtotal.Float64(), 1e-9)
	assert.InDelta(t, 250.0, got.TotalAmount.Float64(), 1e-9)
	assert.Equal(t, "Desert Safari", got.Items[0].ActivityName)
	assert.Equal(t, c, got)
}

func TestAddItemReplacesSameTriple(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	_, deal := fixtureCatalog(uow.CatalogRepo)
	cartID := uuid.New()
	existingCart(uow, cartID)
	svc := newService(uow)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := cart.AddItemParams{
		ActivityID:  deal.ActivityID,
		DealID:      deal.ID,
		BookingDate: date,
		Adults:      1,
	}
	_, err := svc.AddItem(context.Background(), cartID, params)
	require.NoError(t, err)

	params.Adults = 3
	got, err := svc.AddItem(context.Background(), cartID, params)
	require.NoError(t, err)
	require.Len(t, got.Items, 1, "same (activity, deal, date) replaces, not duplicates")
	assert.Equal(t, 3, got.Items[0].Adults)
	assert.InDelta(t, 300.0, got.TotalAmount.Float64(), 1e-9)

	// A different date is a new line.
	params.BookingDate = date.AddDate(0, 0, 1)
	got, err = svc.AddItem(context.Background(), cartID, params)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.InDelta(t, 600.0, got.TotalAmount.Float64(), 1e-9)
}

func TestAddItemNoPricingInEffect(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	_, deal := fixtureCatalog(uow.CatalogRepo)
	svc := newService(uow)

	_, err := svc.AddItem(context.Background(), uuid.New(), cart.AddItemParams{
		ActivityID:  deal.ActivityID,
		DealID:      deal.ID,
		BookingDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		Adults:      1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
	uow.CartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItemRejectsZeroPax(t *testing.T) {
	svc := newService(mocks.NewUnitOfWork())
	_, err := svc.AddItem(context.Background(), uuid.New(), cart.AddItemParams{})
	assert.ErrorIs(t, err, cart.ErrInvalidPax)
}

func TestAddItemSlidesExpiry(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	_, deal := fixtureCatalog(uow.CatalogRepo)
	cartID := uuid.New()
	c := existingCart(uow, cartID)
	svc := newService(uow)

	_, err := svc.AddItem(context.Background(), cartID, cart.AddItemParams{
		ActivityID:  deal.ActivityID,
		DealID:      deal.ID,
		BookingDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Adults:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(24*time.Hour), c.ExpiresAt, "every mutation resets the sliding window")
}

func TestUpdateItemResums(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	_, deal := fixtureCatalog(uow.CatalogRepo)
	cartID := uuid.New()
	existingCart(uow, cartID)
	svc := newService(uow)

	_, err := svc.AddItem(context.Background(), cartID, cart.AddItemParams{
		ActivityID:  deal.ActivityID,
		DealID:      deal.ID,
		BookingDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Adults:      1,
	})
	require.NoError(t, err)

	got, err := svc.UpdateItem(context.Background(), cartID, 0, 2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 300.0, got.TotalAmount.Float64(), 1e-9)

	_, err = svc.UpdateItem(context.Background(), cartID, 5, 1, 0)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	_, deal := fixtureCatalog(uow.CatalogRepo)
	cartID := uuid.New()
	existingCart(uow, cartID)
	svc := newService(uow)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		_, err := svc.AddItem(context.Background(), cartID, cart.AddItemParams{
			ActivityID:  deal.ActivityID,
			DealID:      deal.ID,
			BookingDate: date.AddDate(0, 0, i),
			Adults:      1,
		})
		require.NoError(t, err)
	}

	got, err := svc.RemoveItem(context.Background(), cartID, 0)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.InDelta(t, 100.0, got.TotalAmount.Float64(), 1e-9)

	_, err = svc.RemoveItem(context.Background(), cartID, -1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestClearKeepsCartDocument(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	_, deal := fixtureCatalog(uow.CatalogRepo)
	cartID := uuid.New()
	c := existingCart(uow, cartID)
	svc := newService(uow)

	_, err := svc.AddItem(context.Background(), cartID, cart.AddItemParams{
		ActivityID:  deal.ActivityID,
		DealID:      deal.ID,
		BookingDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Adults:      1,
	})
	require.NoError(t, err)

	got, err := svc.Clear(context.Background(), cartID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.TotalAmount.IsZero())
	assert.Equal(t, c.ID, got.ID)
	uow.CartRepo.AssertCalled(t, "Save", mock.Anything, c)
}

func TestGetLazilyCreates(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	uow.CartRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
	svc := newService(uow)

	got, err := svc.Get(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Empty(t, got.Items)

	// Unknown key: created under that key.
	wanted := uuid.New()
	uow.CartRepo.On("Get", mock.Anything, wanted).Return(nil, domain.ErrCartNotFound)
	got, err = svc.Get(context.Background(), wanted)
	require.NoError(t, err)
	assert.Equal(t, wanted, got.ID)
}

func TestGetResetsExpiredCart(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	cartID := uuid.New()
	stale := domain.NewCart(cartID, fixedNow.Add(-48*time.Hour), 24*time.Hour)
	stale.Items = []domain.CartItem{{Adults: 1}}
	uow.CartRepo.On("Get", mock.Anything, cartID).Return(stale, nil)
	uow.CartRepo.On("Save", mock.Anything, stale).Return(nil)
	svc := newService(uow)

	got, err := svc.Get(context.Background(), cartID)
	require.NoError(t, err)
	assert.Empty(t, got.Items, "expired cart is reset under the same key")
	assert.Equal(t, fixedNow.Add(24*time.Hour), got.ExpiresAt)
}
