// Package repository defines the persistence contracts consumed by the
// services. Implementations live under infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain"
)

// CartRepository persists cart documents.
type CartRepository interface {
	// Get returns the cart or domain.ErrCartNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
	// Create inserts a new cart document.
	Create(ctx context.Context, cart *domain.Cart) error
	// Save replaces the cart's items, total and expiry.
	Save(ctx context.Context, cart *domain.Cart) error
	// DeleteExpired drops carts whose sliding expiry passed before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// BookingRepository persists bookings.
type BookingRepository interface {
	// Create inserts a new booking. The booking reference carries a unique
	// constraint; a collision surfaces as an error rather than an overwrite.
	Create(ctx context.Context, b *domain.Booking) error
	// SetSession records the payment-provider session on a booking.
	SetSession(ctx context.Context, id uuid.UUID, sessionID string) error
	// FindPendingByCart returns the single PENDING booking for a cart, or
	// (nil, nil) when none exists.
	FindPendingByCart(ctx context.Context, cartID uuid.UUID) (*domain.Booking, error)
	// UpdateStatusIfPending transitions PENDING -> to and reports whether a
	// row actually changed. The guard keeps terminal statuses immutable.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, to domain.BookingStatus) (bool, error)
	// GetByReference returns the booking or domain.ErrBookingNotFound.
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
}

// CatalogRepository reads priced catalog entities. Catalog CRUD itself is
// owned elsewhere; this subsystem only reads.
type CatalogRepository interface {
	GetActivity(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListActivities(ctx context.Context) ([]domain.Activity, error)
	GetDeal(ctx context.Context, id uuid.UUID) (*domain.Deal, error)
	ListDealsByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.Deal, error)
	GetHolidayPackage(ctx context.Context, id uuid.UUID) (*domain.HolidayPackage, error)
	GetComboOffer(ctx context.Context, id uuid.UUID) (*domain.ComboOffer, error)
}

// UnitOfWork provides transaction boundaries and repository access bound to
// the same session, so a checkout's cart read and booking write are atomic.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Carts() (CartRepository, error)
	Bookings() (BookingRepository, error)
	Catalog() (CatalogRepository, error)
}
