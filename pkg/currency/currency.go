// Package currency provides the currency code type and ISO 4217 format checks
// shared by the pricing and checkout subsystems.
package currency

import "regexp"

// Code is an ISO 4217 currency code (3 uppercase letters).
type Code string

// Common codes used across the catalog. Activities, deals and combo offers are
// persisted in AED; holiday packages in USD.
const (
	AED Code = "AED"
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	SAR Code = "SAR"
	INR Code = "INR"
)

// DefaultCurrency is the fallback code when an entity carries no base currency tag.
const DefaultCurrency = AED

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat reports whether code looks like an ISO 4217 code.
// It does not check that the code exists in any rate table.
func IsValidFormat(code string) bool {
	return codeFormat.MatchString(code)
}

func (c Code) String() string {
	return string(c)
}

// zeroDecimal lists the ISO 4217 currencies without a minor unit, per the
// Stripe currency reference.
var zeroDecimal = map[Code]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {},
	"KRW": {}, "MGA": {}, "PYG": {}, "RWF": {}, "UGX": {}, "VND": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// MinorUnitFactor returns the multiplier from a major-unit amount to the
// currency's smallest unit: 1 for zero-decimal currencies, 100 otherwise.
func MinorUnitFactor(c Code) int64 {
	if _, ok := zeroDecimal[c]; ok {
		return 1
	}
	return 100
}
