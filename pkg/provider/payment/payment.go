// Package payment defines the payment-provider contract. The concrete Stripe
// implementation lives under infra/provider/stripepayment.
package payment

import (
	"context"

	"github.com/google/uuid"
)

// Status is the provider's authoritative payment state for a session.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusUnpaid  Status = "unpaid"
	StatusExpired Status = "expired"
)

// LineItem is one priced line of a checkout session. Amount is in the
// smallest currency unit.
type LineItem struct {
	Name     string
	Amount   int64
	Currency string
	Quantity int64
}

// CreateSessionParams carries everything needed to open a checkout session.
// IdempotencyKey is the booking reference: a session re-create after a
// rolled-back checkout reuses the key and is therefore safe.
type CreateSessionParams struct {
	CartID         uuid.UUID
	Reference      string
	Email          string
	LineItems      []LineItem
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// Session is a provider checkout session.
type Session struct {
	ID            string
	URL           string
	PaymentStatus Status
}

// Provider is the external payment collaborator.
type Provider interface {
	// CreateCheckoutSession opens a session for the given amount and returns
	// its redirect URL.
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	// GetSession retrieves the session with its authoritative payment status.
	GetSession(ctx context.Context, id string) (*Session, error)
	// ExpireSession invalidates an open session. Best-effort on the cancel
	// path: failures are logged, not fatal.
	ExpireSession(ctx context.Context, id string) error
}
