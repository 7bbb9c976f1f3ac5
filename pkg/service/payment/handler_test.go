package payment_test

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
	"github.com/tripmena/backend/pkg/domain"
	provider "github.com/tripmena/backend/pkg/provider/payment"
	"github.com/tripmena/backend/pkg/service/payment"
)

func newHandler(uow *mocks.UnitOfWork, payments *mocks.PaymentProvider, notifier *mocks.Notifier) *payment.Handler {
	return payment.New(uow, payments, notifier, slog.Default())
}

func pendingBooking(cartID uuid.UUID) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		CartID:    cartID,
		Reference: "TM-20240301093000-A1B2C3",
		Status:    domain.BookingPending,
	}
}

func TestCompleteRejectsUnpaidSession(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	notifier := &mocks.Notifier{}
	payments.On("GetSession", mock.Anything, "cs_unpaid").
		Return(&provider.Session{ID: "cs_unpaid", PaymentStatus: provider.StatusUnpaid}, nil)

	_, err := newHandler(uow, payments, notifier).Complete(context.Background(), "cs_unpaid", uuid.New())
	assert.ErrorIs(t, err, domain.ErrPaymentIncomplete)
	uow.BookingRepo.AssertNotCalled(t, "FindPendingByCart", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestCompleteProviderLookupFailure(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	payments.On("GetSession", mock.Anything, "cs_gone").
		Return(nil, errors.New("stripe: no such session"))

	_, err := newHandler(uow, payments, &mocks.Notifier{}).Complete(context.Background(), "cs_gone", uuid.New())
	assert.ErrorIs(t, err, domain.ErrPaymentProvider)
}

func TestCompleteFinalizesBookingAndClearsCart(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	notifier := &mocks.Notifier{}
	cart := domain.NewCart(uuid.New(), time.Now(), 24*time.Hour)
	cart.Items = []domain.CartItem{{Adults: 2}}
	booking := pendingBooking(cart.ID)

	payments.On("GetSession", mock.Anything, "cs_paid").
		Return(&provider.Session{ID: "cs_paid", PaymentStatus: provider.StatusPaid}, nil)
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cart.ID).Return(booking, nil)
	uow.BookingRepo.On("UpdateStatusIfPending", mock.Anything, booking.ID, domain.BookingCompleted).Return(true, nil)
	uow.CartRepo.On("Get", mock.Anything, cart.ID).Return(cart, nil)
	uow.CartRepo.On("Save", mock.Anything, cart).Return(nil)
	notifier.On("BookingConfirmed", mock.Anything, booking).Return(nil)

	got, err := newHandler(uow, payments, notifier).Complete(context.Background(), "cs_paid", cart.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.BookingCompleted, got.Status)
	assert.Empty(t, cart.Items, "cart is cleared only on confirmed completion")
	notifier.AssertCalled(t, "BookingConfirmed", mock.Anything, booking)
}

func TestCompleteIsIdempotent(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	notifier := &mocks.Notifier{}
	cartID := uuid.New()

	payments.On("GetSession", mock.Anything, "cs_paid").
		Return(&provider.Session{ID: "cs_paid", PaymentStatus: provider.StatusPaid}, nil)
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cartID).Return(nil, nil)

	got, err := newHandler(uow, payments, notifier).Complete(context.Background(), "cs_paid", cartID)
	require.NoError(t, err)
	assert.Nil(t, got, "repeat completion is a no-op, not an error")
	uow.CartRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestCompleteNotificationFailureIsNotFatal(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	notifier := &mocks.Notifier{}
	cart := domain.NewCart(uuid.New(), time.Now(), 24*time.Hour)
	cart.Items = []domain.CartItem{{Adults: 1}}
	booking := pendingBooking(cart.ID)

	payments.On("GetSession", mock.Anything, "cs_paid").
		Return(&provider.Session{ID: "cs_paid", PaymentStatus: provider.StatusPaid}, nil)
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cart.ID).Return(booking, nil)
	uow.BookingRepo.On("UpdateStatusIfPending", mock.Anything, booking.ID, domain.BookingCompleted).Return(true, nil)
	uow.CartRepo.On("Get", mock.Anything, cart.ID).Return(cart, nil)
	uow.CartRepo.On("Save", mock.Anything, cart).Return(nil)
	notifier.On("BookingConfirmed", mock.Anything, booking).Return(errors.New("smtp down"))

	got, err := newHandler(uow, payments, notifier).Complete(context.Background(), "cs_paid", cart.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)
}

func TestCancelRejectsPendingAndKeepsCart(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	cartID := uuid.New()
	booking := pendingBooking(cartID)

	payments.On("ExpireSession", mock.Anything, "cs_open").Return(nil)
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cartID).Return(booking, nil)
	uow.BookingRepo.On("UpdateStatusIfPending", mock.Anything, booking.ID, domain.BookingRejected).Return(true, nil)

	err := newHandler(uow, payments, &mocks.Notifier{}).Cancel(context.Background(), cartID, "cs_open")
	require.NoError(t, err)
	// The cart survives a cancel so the customer can retry checkout.
	uow.CartRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.CartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCancelExpireFailureStillRejects(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	cartID := uuid.New()
	booking := pendingBooking(cartID)

	payments.On("ExpireSession", mock.Anything, "cs_open").Return(errors.New("stripe: timeout"))
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cartID).Return(booking, nil)
	uow.BookingRepo.On("UpdateStatusIfPending", mock.Anything, booking.ID, domain.BookingRejected).Return(true, nil)

	err := newHandler(uow, payments, &mocks.Notifier{}).Cancel(context.Background(), cartID, "cs_open")
	require.NoError(t, err)
	uow.BookingRepo.AssertCalled(t, "UpdateStatusIfPending", mock.Anything, booking.ID, domain.BookingRejected)
}

func TestCancelWithoutPendingBooking(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	payments := &mocks.PaymentProvider{}
	cartID := uuid.New()
	uow.BookingRepo.On("FindPendingByCart", mock.Anything, cartID).Return(nil, nil)

	err := newHandler(uow, payments, &mocks.Notifier{}).Cancel(context.Background(), cartID, "")
	require.NoError(t, err)
	payments.AssertNotCalled(t, "ExpireSession", mock.Anything, mock.Anything)
}

func TestLookup(t *testing.T) {
	uow := mocks.NewUnitOfWork()
	booking := pendingBooking(uuid.New())
	uow.BookingRepo.On("GetByReference", mock.Anything, booking.Reference).Return(booking, nil)
	uow.BookingRepo.On("GetByReference", mock.Anything, "TM-MISSING").Return(nil, domain.ErrBookingNotFound)

	h := newHandler(uow, &mocks.PaymentProvider{}, &mocks.Notifier{})
	got, err := h.Lookup(context.Background(), booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, booking, got)

	_, err = h.Lookup(context.Background(), "TM-MISSING")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
