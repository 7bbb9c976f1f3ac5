// Package mocks provides shared test doubles for the repository and provider
// contracts.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/provider/payment"
	"github.com/tripmena/backend/pkg/repository"
)

// UnitOfWork is a pass-through unit of work: Do runs the body against the
// configured repository mocks, so transaction contents stay assertable.
type UnitOfWork struct {
	CartRepo    *CartRepository
	BookingRepo *BookingRepository
	CatalogRepo *CatalogRepository
	// DoErr, when set, fails the transaction without running the body.
	DoErr error
}

// NewUnitOfWork returns a UnitOfWork with fresh repository mocks.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		CartRepo:    &CartRepository{},
		BookingRepo: &BookingRepository{},
		CatalogRepo: &CatalogRepository{},
	}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.DoErr != nil {
		return u.DoErr
	}
	return fn(u)
}

func (u *UnitOfWork) Carts() (repository.CartRepository, error)       { return u.CartRepo, nil }
func (u *UnitOfWork) Bookings() (repository.BookingRepository, error) { return u.BookingRepo, nil }
func (u *UnitOfWork) Catalog() (repository.CatalogRepository, error)  { return u.CatalogRepo, nil }

// CartRepository mocks repository.CartRepository.
type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	args := m.Called(ctx, id)
	var cart *domain.Cart
	if v := args.Get(0); v != nil {
		cart = v.(*domain.Cart)
	}
	return cart, args.Error(1)
}

func (m *CartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *CartRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// BookingRepository mocks repository.BookingRepository.
type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *BookingRepository) SetSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	return m.Called(ctx, id, sessionID).Error(0)
}

func (m *BookingRepository) FindPendingByCart(ctx context.Context, cartID uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, cartID)
	var b *domain.Booking
	if v := args.Get(0); v != nil {
		b = v.(*domain.Booking)
	}
	return b, args.Error(1)
}

func (m *BookingRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, to domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, to)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	var b *domain.Booking
	if v := args.Get(0); v != nil {
		b = v.(*domain.Booking)
	}
	return b, args.Error(1)
}

// CatalogRepository mocks repository.CatalogRepository.
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) GetActivity(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	var a *domain.Activity
	if v := args.Get(0); v != nil {
		a = v.(*domain.Activity)
	}
	return a, args.Error(1)
}

func (m *CatalogRepository) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	args := m.Called(ctx)
	var list []domain.Activity
	if v := args.Get(0); v != nil {
		list = v.([]domain.Activity)
	}
	return list, args.Error(1)
}

func (m *CatalogRepository) GetDeal(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	args := m.Called(ctx, id)
	var d *domain.Deal
	if v := args.Get(0); v != nil {
		d = v.(*domain.Deal)
	}
	return d, args.Error(1)
}

func (m *CatalogRepository) ListDealsByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.Deal, error) {
	args := m.Called(ctx, activityID)
	var list []domain.Deal
	if v := args.Get(0); v != nil {
		list = v.([]domain.Deal)
	}
	return list, args.Error(1)
}

func (m *CatalogRepository) GetHolidayPackage(ctx context.Context, id uuid.UUID) (*domain.HolidayPackage, error) {
	args := m.Called(ctx, id)
	var p *domain.HolidayPackage
	if v := args.Get(0); v != nil {
		p = v.(*domain.HolidayPackage)
	}
	return p, args.Error(1)
}

func (m *CatalogRepository) GetComboOffer(ctx context.Context, id uuid.UUID) (*domain.ComboOffer, error) {
	args := m.Called(ctx, id)
	var c *domain.ComboOffer
	if v := args.Get(0); v != nil {
		c = v.(*domain.ComboOffer)
	}
	return c, args.Error(1)
}

// PaymentProvider mocks payment.Provider.
type PaymentProvider struct {
	mock.Mock
}

func (m *PaymentProvider) CreateCheckoutSession(ctx context.Context, params payment.CreateSessionParams) (*payment.Session, error) {
	args := m.Called(ctx, params)
	var s *payment.Session
	if v := args.Get(0); v != nil {
		s = v.(*payment.Session)
	}
	return s, args.Error(1)
}

func (m *PaymentProvider) GetSession(ctx context.Context, id string) (*payment.Session, error) {
	args := m.Called(ctx, id)
	var s *payment.Session
	if v := args.Get(0); v != nil {
		s = v.(*payment.Session)
	}
	return s, args.Error(1)
}

func (m *PaymentProvider) ExpireSession(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// Notifier mocks the customer-notification collaborator.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}
