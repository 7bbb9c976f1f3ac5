package domain

import "errors"

var (
	// ErrUnknownCurrency is returned when a requested currency code is absent
	// from the current rate table. It must propagate to the caller, never be
	// silently replaced with a default.
	ErrUnknownCurrency = errors.New("unknown currency code")

	// ErrInvalidDate is returned when a booking date has no pricing entry in
	// effect, or a date string cannot be parsed.
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrCartNotFound is returned when the referenced cart does not exist.
	ErrCartNotFound = errors.New("cart not found")

	// ErrCartEmpty is returned when checkout is attempted on a cart with no items.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrItemNotFound is returned when a cart line index is out of range.
	ErrItemNotFound = errors.New("cart item not found")

	// ErrInvalidContactInfo is returned when email or phone validation fails.
	ErrInvalidContactInfo = errors.New("invalid contact information")

	// ErrPaymentProvider wraps failures from the payment provider during
	// session create, retrieve or expire.
	ErrPaymentProvider = errors.New("payment provider error")

	// ErrPaymentIncomplete is returned when a completion callback arrives for
	// a session the provider does not report as paid.
	ErrPaymentIncomplete = errors.New("payment not completed")

	// ErrBookingNotFound is returned when a booking lookup finds nothing.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrActivityNotFound and ErrDealNotFound are returned by catalog lookups.
	ErrActivityNotFound = errors.New("activity not found")
	ErrDealNotFound     = errors.New("deal not found")
	ErrPackageNotFound  = errors.New("holiday package not found")
	ErrComboNotFound    = errors.New("combo offer not found")
)
