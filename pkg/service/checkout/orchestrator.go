// Package checkout turns a non-empty cart into a single PENDING booking and
// a payment-provider session, atomically with respect to the cart read.
package checkout

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripmena/backend/pkg/config"
	"github.com/tripmena/backend/pkg/currency"
	"github.com/tripmena/backend/pkg/domain"
	"github.com/tripmena/backend/pkg/provider/payment"
	"github.com/tripmena/backend/pkg/repository"
)

// ContactInfo is the customer contact captured at checkout.
type ContactInfo struct {
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"required,e164"`
}

// Result is what the HTTP layer needs to redirect the customer.
type Result struct {
	BookingReference string
	SessionID        string
	RedirectURL      string
}

// Orchestrator runs the checkout state machine.
//
// The provider session is created inside the transaction's wall-clock window,
// before commit: a provider failure rolls the booking back cleanly, while a
// failed commit after a successful provider call can orphan a session. The
// booking reference doubles as the provider idempotency key, so a retried
// session-create after such a rollback is safe rather than double-charging.
type Orchestrator struct {
	uow      repository.UnitOfWork
	payments payment.Provider
	cfg      *config.Checkout
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock injects a clock for deterministic reference generation in tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates a checkout orchestrator.
func New(
	uow repository.UnitOfWork,
	payments payment.Provider,
	cfg *config.Checkout,
	logger *slog.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		uow:      uow,
		payments: payments,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Checkout validates contact info, snapshots the cart into a PENDING booking
// and opens a provider session for it. Any failure between the cart read and
// the commit rolls the whole transaction back; the cart itself is left intact
// for retry and is only cleared on confirmed payment completion.
func (o *Orchestrator) Checkout(ctx context.Context, cartID uuid.UUID, contact ContactInfo) (*Result, error) {
	// Contact validation happens before any database work.
	if err := o.validate.Struct(contact); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidContactInfo, err)
	}

	log := o.logger.With("handler", "checkout", "cart_id", cartID)
	reference := o.newReference()

	var result *Result
	err := o.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		carts, err := uow.Carts()
		if err != nil {
			return err
		}
		cart, err := carts.Get(ctx, cartID)
		if err != nil {
			return err
		}
		// Expired-but-unpurged carts cannot check out; the cart service
		// treats them as gone on read too.
		if cart.Expired(o.now()) {
			return domain.ErrCartNotFound
		}
		if cart.IsEmpty() {
			return domain.ErrCartEmpty
		}

		bookings, err := uow.Bookings()
		if err != nil {
			return err
		}
		// At most one non-terminal booking per cart: an abandoned PENDING
		// booking from an earlier attempt is superseded here.
		if stale, err := bookings.FindPendingByCart(ctx, cart.ID); err != nil {
			return err
		} else if stale != nil {
			if _, err := bookings.UpdateStatusIfPending(ctx, stale.ID, domain.BookingRejected); err != nil {
				return err
			}
			log.Info("superseded stale pending booking", "booking_id", stale.ID)
		}

		booking := &domain.Booking{
			ID:          uuid.New(),
			CartID:      cart.ID,
			Reference:   reference,
			Items:       domain.SnapshotCart(cart),
			TotalPrice:  cart.TotalAmount,
			Email:       contact.Email,
			PhoneNumber: contact.PhoneNumber,
			Status:      domain.BookingPending,
			CreatedAt:   o.now(),
		}
		if err := bookings.Create(ctx, booking); err != nil {
			return err
		}

		session, err := o.payments.CreateCheckoutSession(ctx, payment.CreateSessionParams{
			CartID:         cart.ID,
			Reference:      reference,
			Email:          contact.Email,
			LineItems:      lineItems(cart),
			SuccessURL:     fmt.Sprintf("%s?cart_id=%s", o.cfg.CompleteURL, cart.ID),
			CancelURL:      fmt.Sprintf("%s?cart_id=%s", o.cfg.CancelURL, cart.ID),
			IdempotencyKey: reference,
		})
		if err != nil {
			// Abort the transaction: the booking must not survive without a session.
			return fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
		}
		if err := bookings.SetSession(ctx, booking.ID, session.ID); err != nil {
			return err
		}

		result = &Result{
			BookingReference: reference,
			SessionID:        session.ID,
			RedirectURL:      session.URL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("checkout session created",
		"booking_reference", result.BookingReference,
		"session_id", result.SessionID,
	)
	return result, nil
}

// newReference builds a human-readable booking reference: timestamp plus a
// random suffix. Uniqueness is not guaranteed by construction; the storage
// layer's unique index makes a collision fail loudly instead of overwriting.
func (o *Orchestrator) newReference() string {
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("TM-%s-%s",
		o.now().UTC().Format("20060102150405"),
		strings.ToUpper(hex.EncodeToString(suffix)),
	)
}

// lineItems maps cart lines to provider line items in the smallest currency unit.
func lineItems(cart *domain.Cart) []payment.LineItem {
	items := make([]payment.LineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		name := it.ActivityName
		if it.DealName != "" {
			name = fmt.Sprintf("%s - %s", it.ActivityName, it.DealName)
		}
		items = append(items, payment.LineItem{
			Name:     name,
			Amount:   smallestUnit(it.Subtotal.Amount(), it.Subtotal.Currency()),
			Currency: strings.ToLower(it.Subtotal.Currency().String()),
			Quantity: 1,
		})
	}
	return items
}

func smallestUnit(amount decimal.Decimal, code currency.Code) int64 {
	factor := decimal.NewFromInt(currency.MinorUnitFactor(code))
	return amount.Mul(factor).Round(0).IntPart()
}
