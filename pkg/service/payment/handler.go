// Package payment reconciles payment-provider callbacks to booking status
// transitions.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/provider/payment"
	"github.com/tripmena/backend/pkg/repository"
)

// Notifier tells the customer about a confirmed booking. Email delivery is an
// external collaborator; infra provides the implementation.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking) error
}

// Handler finalizes bookings from provider callbacks. Both entry points are
// idempotent by design intent: a repeated completion finds no PENDING booking
// and becomes a no-op rather than an error.
type Handler struct {
	uow      repository.UnitOfWork
	payments payment.Provider
	notifier Notifier
	logger   *slog.Logger
}

// New creates a completion handler.
func New(
	uow repository.UnitOfWork,
	payments payment.Provider,
	notifier Notifier,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		uow:      uow,
		payments: payments,
		notifier: notifier,
		logger:   logger,
	}
}

// Complete handles the success callback. The provider's session status is
// authoritative: anything but paid is rejected. On success the PENDING
// booking for the cart transitions to COMPLETED, the cart is cleared, and the
// customer is notified.
func (h *Handler) Complete(ctx context.Context, sessionID string, cartID uuid.UUID) (*domain.Booking, error) {
	log := h.logger.With("handler", "payment.Complete", "session_id", sessionID, "cart_id", cartID)

	session, err := h.payments.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}
	if session.PaymentStatus != payment.StatusPaid {
		return nil, fmt.Errorf("%w: session status %q", domain.ErrPaymentIncomplete, session.PaymentStatus)
	}

	var booking *domain.Booking
	err = h.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bookings, err := uow.Bookings()
		if err != nil {
			return err
		}
		booking, err = bookings.FindPendingByCart(ctx, cartID)
		if err != nil {
			return err
		}
		if booking == nil {
			// Already processed; treated as done, not as an error.
			log.Info("no pending booking for cart, completion is a no-op")
			return nil
		}
		changed, err := bookings.UpdateStatusIfPending(ctx, booking.ID, domain.BookingCompleted)
		if err != nil {
			return err
		}
		if !changed {
			log.Info("booking already finalized", "booking_id", booking.ID)
			booking = nil
			return nil
		}
		booking.Status = domain.BookingCompleted

		carts, err := uow.Carts()
		if err != nil {
			return err
		}
		cart, err := carts.Get(ctx, cartID)
		if err != nil {
			return err
		}
		cart.ClearItems()
		return carts.Save(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}

	if err := h.notifier.BookingConfirmed(ctx, booking); err != nil {
		// Notification is best-effort; the booking is already final.
		log.Warn("booking confirmation notification failed", "error", err)
	}
	log.Info("booking completed", "booking_reference", booking.Reference)
	return booking, nil
}

// Cancel handles the cancel callback: the provider session is expired
// best-effort, the PENDING booking transitions to REJECTED, and the cart is
// intentionally left populated so the customer can retry checkout.
func (h *Handler) Cancel(ctx context.Context, cartID uuid.UUID, sessionID string) error {
	log := h.logger.With("handler", "payment.Cancel", "session_id", sessionID, "cart_id", cartID)

	if sessionID != "" {
		if err := h.payments.ExpireSession(ctx, sessionID); err != nil {
			log.Warn("failed to expire provider session", "error", err)
		}
	}

	return h.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bookings, err := uow.Bookings()
		if err != nil {
			return err
		}
		booking, err := bookings.FindPendingByCart(ctx, cartID)
		if err != nil {
			return err
		}
		if booking == nil {
			log.Info("no pending booking for cart, cancellation is a no-op")
			return nil
		}
		if _, err := bookings.UpdateStatusIfPending(ctx, booking.ID, domain.BookingRejected); err != nil {
			return err
		}
		log.Info("booking rejected", "booking_reference", booking.Reference)
		return nil
	})
}

// Lookup returns a booking by its human-readable reference.
func (h *Handler) Lookup(ctx context.Context, reference string) (*domain.Booking, error) {
	var booking *domain.Booking
	err := h.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bookings, err := uow.Bookings()
		if err != nil {
			return err
		}
		booking, err = bookings.GetByReference(ctx, reference)
		return err
	})
	return booking, err
}
