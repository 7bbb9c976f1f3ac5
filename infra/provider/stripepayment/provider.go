// Package stripepayment implements the payment provider contract on Stripe
// Checkout.
package stripepayment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/tripmena/backend/pkg/config"
	"github.com/tripmena/backend/pkg/provider/payment"
)

// Provider implements payment.Provider using Stripe Checkout Sessions.
type Provider struct {
	client *stripe.Client
	logger *slog.Logger
}

// New creates a Stripe-backed payment provider.
func New(cfg *config.Stripe, logger *slog.Logger) *Provider {
	return &Provider{
		client: stripe.NewClient(cfg.ApiKey),
		logger: logger,
	}
}

// CreateCheckoutSession opens a hosted checkout session for the cart's line
// items. Stripe substitutes the session id into the success URL placeholder,
// so the completion callback can verify payment state before finalizing.
func (p *Provider) CreateCheckoutSession(
	ctx context.Context,
	params payment.CreateSessionParams,
) (*payment.Session, error) {
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(params.LineItems))
	for _, item := range params.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency: stripe.String(item.Currency),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.Amount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	createParams := &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(withSessionPlaceholder(params.SuccessURL)),
		CancelURL:          stripe.String(appendQuery(params.CancelURL, "session_id="+"{CHECKOUT_SESSION_ID}")),
		LineItems:          lineItems,
		Metadata: map[string]string{
			"cart_id":           params.CartID.String(),
			"booking_reference": params.Reference,
		},
	}
	if params.Email != "" {
		createParams.CustomerEmail = stripe.String(params.Email)
	}
	if params.IdempotencyKey != "" {
		createParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	session, err := p.client.V1CheckoutSessions.Create(ctx, createParams)
	if err != nil {
		p.logger.Error("failed to create checkout session",
			"booking_reference", params.Reference, "error", err)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	p.logger.Info("created checkout session",
		"session_id", session.ID,
		"booking_reference", params.Reference,
	)
	return &payment.Session{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: mapStatus(session.PaymentStatus),
	}, nil
}

// GetSession retrieves a session so callbacks can check its payment status.
func (p *Provider) GetSession(ctx context.Context, id string) (*payment.Session, error) {
	session, err := p.client.V1CheckoutSessions.Retrieve(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", id, err)
	}
	return &payment.Session{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: mapStatus(session.PaymentStatus),
	}, nil
}

// ExpireSession invalidates an open session after a cancel.
func (p *Provider) ExpireSession(ctx context.Context, id string) error {
	_, err := p.client.V1CheckoutSessions.Expire(ctx, id, &stripe.CheckoutSessionExpireParams{})
	if err != nil {
		return fmt.Errorf("failed to expire checkout session %s: %w", id, err)
	}
	return nil
}

func mapStatus(s stripe.CheckoutSessionPaymentStatus) payment.Status {
	switch s {
	case stripe.CheckoutSessionPaymentStatusPaid,
		stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return payment.StatusPaid
	case stripe.CheckoutSessionPaymentStatusUnpaid:
		return payment.StatusUnpaid
	default:
		return payment.Status(s)
	}
}

// withSessionPlaceholder appends Stripe's session-id template variable so the
// success redirect carries the real session id.
func withSessionPlaceholder(successURL string) string {
	return appendQuery(successURL, "session_id={CHECKOUT_SESSION_ID}")
}

func appendQuery(rawURL, pair string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + pair
}
