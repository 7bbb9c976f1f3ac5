package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tripmena/backend/pkg/currency"
)

func TestSmallestUnit(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   currency.Code
		want   int64
	}{
		{"two-decimal currency in cents", "200.00", currency.AED, 20000},
		{"fractional cents rounded", "10.555", currency.USD, 1056},
		{"zero-decimal currency unchanged", "1500", "JPY", 1500},
		{"zero-decimal fraction rounded", "1500.4", "JPY", 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, smallestUnit(amount, tt.code))
		})
	}
}
