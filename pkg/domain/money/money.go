// Package money provides the Money value object. Every monetary amount in the
// system is tagged with the currency it is denominated in; arithmetic across
// two currencies is rejected rather than silently mixed.
package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tripmena/backend/pkg/currency"
)

var (
	// ErrInvalidCurrency is returned when a currency code is not a valid ISO 4217 code.
	ErrInvalidCurrency = errors.New("invalid currency code")
	// ErrNegativeAmount is returned for negative amounts; prices in this domain are never negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrCurrencyMismatch is returned when arithmetic is attempted across currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money is a monetary amount in a specific currency.
// Invariants:
//   - Amount is non-negative.
//   - Currency is a valid ISO 4217 code.
//   - Add requires matching currencies; convert first.
type Money struct {
	amount   decimal.Decimal
	currency currency.Code
}

// New creates a Money from a float amount and currency code.
func New(amount float64, code currency.Code) (Money, error) {
	return NewFromDecimal(decimal.NewFromFloat(amount), code)
}

// NewFromDecimal creates a Money from a decimal amount and currency code.
func NewFromDecimal(amount decimal.Decimal, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, ErrInvalidCurrency
	}
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount, currency: code}, nil
}

// Zero returns a zero amount in the given currency.
func Zero(code currency.Code) Money {
	if code == "" {
		code = currency.DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: code}
}

// Amount returns the amount as a decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for serialization boundaries.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// SameCurrency reports whether both amounts are in the same currency.
func (m Money) SameCurrency(other Money) bool {
	return m.currency == other.currency
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MulInt multiplies the amount by a non-negative count (e.g. pax).
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n))), currency: m.currency}
}

// Round rounds to 2 decimal places, half away from zero.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(2), currency: m.currency}
}

// Equals reports whether both currency and amount match.
func (m Money) Equals(other Money) bool {
	return m.SameCurrency(other) && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

type moneyJSON struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// MarshalJSON serializes Money as {"amount": 12.34, "currency": "AED"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Float64(), Currency: string(m.currency)})
}

// UnmarshalJSON validates the invariants on the way in.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := New(raw.Amount, currency.Code(raw.Currency))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
