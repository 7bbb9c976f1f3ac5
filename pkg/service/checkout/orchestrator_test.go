package checkout_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tripmena/backend/internal/fixtures/mocks"
	"github.com/tripmena/backend/pkg/config"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/domain/money"
	"github.com/tripmena/backend/pkg/provider/payment"
	"github.com/tripmena/backend/pkg/service/checkout"
)

var (
	fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	contact  = checkout.ContactInfo{Email: "guest@example.com", PhoneNumber: "+971501234567"}
)

func checkoutConfig() *config.Checkout {
	return &config.Checkout{
		CompleteURL: "https://api.tripmena.test/cart/complete",
		CancelURL:   "https://api.tripmena.test/cart/cancel",
	}
}

func newOrchestrator(uow *mocks.UnitOfWork, provider *mocks.PaymentProvider) *checkout.Orchestrator {
	return checkout.New(uow, provider, checkoutConfig(), slog.Default(),
		checkout.WithClock(func() time.Time { return fixedNow }))
}

func filledCart(t *testing.T) *domain.Cart {
	t.Helper()
	cart := domain.NewCart(uuid.New(), fixedNow, 24*time.Hour)
	adult, err := money.New(100, currency.AED)
	require.NoError(t, err)
	item := domain.CartItem{
		ActivityID:   uuid.New(),
		DealID:       uuid.New(),
		ActivityName: "Dhow Cruise",
		DealName:     "Sunset",
		BookingDate:  fixedNow.AddDate(0, 0, 7),
		Adults:       2,
		AdultPrice:   adult,
		ChildPrice:   money.Zero(currency.AED),
	}
	require.NoError(t, item.ComputeSubtotal())
	cart.Items = []domain.CartItem{item}
	require.NoError(t, cart.Resum())
	return cart
}

func TestCheckoutInvalidContact(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	provider := &mocks.PaymentProvider{}
	orch := newOrchestrator(uow, provider)

	for name, bad := range map[string]checkout.ContactInfo{
		"missing email": {PhoneNumber: "+971501234567"},
		"bad email":     {Email: "not-an-email", PhoneNumber: "+971501234567"},
		"bad phone":     {Email: "guest@example.com", PhoneNumber: "05012345"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := orch.Checkout(context.Background(), uuid.New(), bad)
			assert.ErrorIs(t, err, domain.ErrInvalidContactInfo)
		})
	}
	// Validation fails before any database work.
	uow.CartRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCheckoutCartNotFound(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	provider := &mocks.PaymentProvider{}
	cartID := uuid.New()
	uow.CartRepo.On("Get", mock.Anything, cartID).Return(nil, domain.ErrCartNotFound)

	_, err := newOrchestrator(uow, provider).Checkout(context.Background(), cartID, contact)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestCheckoutExpiredCart(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	provider := &mocks.PaymentProvider{}
	cart := filledCart(t)
	cart.ExpiresAt = fixedNow.Add(-time.Minute)
	uow.CartRepo.On("Get", mock.Anything, cart.ID).Return(cart, nil)

	_, err := newOrchestrator(uow, provider).Checkout(context.Background(), cart.ID, contact)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
	uow.BookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCheckoutEmptyCart(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	provider := &mocks.PaymentProvider{}
	empty := domain.NewCart(uuid.New(), fixedNow, 24*time.Hour)
	uow.CartRepo.On("Get", mock.Anything, empty.ID).Return(empty, nil)

	_, err := newOrchestrator(uow, provider).Checkout(context.Background(), empty.ID, contact)
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
	uow.BookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCheckoutProviderFailureAbortsTransaction(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	provider := &mocks.PaymentProvider{}
	cart := filledCart(t)
	uow.CartRepo.On("Get", mock.Anything, cart.ID).Return(cart, nil)
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cart.ID).Return(nil, nil)
	uow.BookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("stripe: api unreachable"))

	_, err := newOrchestrator(uow, provider).Checkout(context.Background(), cart.ID, contact)
	assert.ErrorIs(t, err, domain.ErrPaymentProvider)
	uow.BookingRepo.AssertNotCalled(t, "SetSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutSupersedesStalePending(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	provider := &mocks.PaymentProvider{}
	cart := filledCart(t)
	stale := &domain.Booking{ID: uuid.New(), CartID: cart.ID, Status: domain.BookingPending}

	uow.CartRepo.On("Get", mock.Anything, cart.ID).Return(cart, nil)
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cart.ID).Return(stale, nil)
	uow.BookingRepo.On("UpdateStatusIfPending", mock.Anything, stale.ID, domain.BookingRejected).Return(true, nil)
	uow.BookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	uow.BookingRepo.On("SetSession", mock.Anything, mock.Anything, "cs_test_123").Return(nil)
	provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&payment.Session{ID: "cs_test_123", URL: "https://pay.test/cs_test_123"}, nil)

	res, err := newOrchestrator(uow, provider).Checkout(context.Background(), cart.ID, contact)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", res.SessionID)
	uow.BookingRepo.AssertCalled(t, "UpdateStatusIfPending", mock.Anything, stale.ID, domain.BookingRejected)
}

func TestCheckoutSuccess(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	provider := &mocks.PaymentProvider{}
	cart := filledCart(t)

	uow.CartRepo.On("Get", mock.Anything, cart.ID).Return(cart, nil)
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cart.ID).Return(nil, nil)

	var created *domain.Booking
	uow.BookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Booking) }).
		Return(nil)

	var sessionParams payment.CreateSessionParams
	provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sessionParams = args.Get(1).(payment.CreateSessionParams) }).
		Return(&payment.Session{ID: "cs_test_ok", URL: "https://pay.test/cs_test_ok"}, nil)
	uow.BookingRepo.On("SetSession", mock.Anything, mock.Anything, "cs_test_ok").Return(nil)

	res, err := newOrchestrator(uow, provider).Checkout(context.Background(), cart.ID, contact)
	require.NoError(t, err)

	assert.Equal(t, "https://pay.test/cs_test_ok", res.RedirectURL)
	assert.Regexp(t, `^TM-20240301093000-[0-9A-F]{6}$`, res.BookingReference)

	require.NotNil(t, created)
	assert.Equal(t, domain.BookingPending, created.Status)
	assert.Equal(t, cart.ID, created.CartID)
	assert.Equal(t, contact.Email, created.Email)
	require.Len(t, created.Items, 1)
	assert.True(t, created.TotalPrice.Equals(cart.TotalAmount))

	// Cart is untouched at checkout; only payment completion clears it.
	uow.CartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	assert.Equal(t, res.BookingReference, sessionParams.IdempotencyKey)
	assert.Contains(t, sessionParams.SuccessURL, "cart_id="+cart.ID.String())
	require.Len(t, sessionParams.LineItems, 1)
	assert.Equal(t, "Dhow Cruise - Sunset", sessionParams.LineItems[0].Name)
	assert.Equal(t, int64(20000), sessionParams.LineItems[0].Amount)
	assert.Equal(t, "aed", sessionParams.LineItems[0].Currency)
}
