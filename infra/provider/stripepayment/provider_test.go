package stripepayment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
	"github.com/tripmena/backend/pkg/provider/payment"
)

func TestWithSessionPlaceholder(t *testing.T) {
	assert.Equal(t,
		"https://api.test/cart/complete?cart_id=abc&session_id={CHECKOUT_SESSION_ID}",
		withSessionPlaceholder("https://api.test/cart/complete?cart_id=abc"))
	assert.Equal(t,
		"https://api.test/cart/complete?session_id={CHECKOUT_SESSION_ID}",
		withSessionPlaceholder("https://api.test/cart/complete"))
}

func TestMapStatus(t *testing.T) {
	assert.Equal(t, payment.StatusPaid, mapStatus(stripe.CheckoutSessionPaymentStatusPaid))
	assert.Equal(t, payment.StatusPaid, mapStatus(stripe.CheckoutSessionPaymentStatusNoPaymentRequired))
	assert.Equal(t, payment.StatusUnpaid, mapStatus(stripe.CheckoutSessionPaymentStatusUnpaid))
}
