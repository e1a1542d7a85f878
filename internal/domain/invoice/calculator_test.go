package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateLineItemAmount(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{
			name:      "whole cents need no rounding",
			quantity:  "2",
			unitPrice: "10.50",
			want:      "21.00",
		},
		{
			name:      "half cent rounds up",
			quantity:  "3",
			unitPrice: "9.995",
			want:      "29.99", // 29.985 rounds half-up at the cent
		},
		{
			name:      "just below half cent rounds down",
			quantity:  "1",
			unitPrice: "9.994",
			want:      "9.99",
		},
		{
			name:      "fractional quantity",
			quantity:  "2.5",
			unitPrice: "0.99",
			want:      "2.48", // 2.475 rounds half-up
		},
		{
			name:      "zero unit price",
			quantity:  "5",
			unitPrice: "0",
			want:      "0.00",
		},
		{
			name:      "max bounds keep full precision",
			quantity:  "10000",
			unitPrice: "1000000",
			want:      "10000000000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLineItemAmount(d(tt.quantity), d(tt.unitPrice))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestCalculateSubtotal(t *testing.T) {
	items := []*LineItem{
		{Amount: d("29.99")},
		{Amount: d("0.01")},
		{Amount: d("100.00")},
	}
	got := CalculateSubtotal(items)
	assert.True(t, got.Equal(d("130.00")), "got %s", got)

	assert.True(t, CalculateSubtotal(nil).Equal(decimal.Zero))
}

func TestCalculateSubtotal_SumsRoundedAmounts(t *testing.T) {
	// Two lines of 3 x 9.995: rounding per line first gives
	// 29.99 + 29.99 = 59.98, while deferring the rounding would give
	// round(59.97) = 59.97. The per-line result is the contract.
	items := []*LineItem{
		{Amount: CalculateLineItemAmount(d("3"), d("9.995"))},
		{Amount: CalculateLineItemAmount(d("3"), d("9.995"))},
	}
	got := CalculateSubtotal(items)
	assert.True(t, got.Equal(d("59.98")), "got %s", got)
}

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		taxRate  string
		want     string
	}{
		{
			name:     "twenty percent",
			subtotal: "29.99",
			taxRate:  "20",
			want:     "6.00", // 5.998 rounds half-up
		},
		{
			name:     "zero rate",
			subtotal: "100.00",
			taxRate:  "0",
			want:     "0.00",
		},
		{
			name:     "full rate",
			subtotal: "59.98",
			taxRate:  "100",
			want:     "59.98",
		},
		{
			name:     "fractional rate rounds at the cent",
			subtotal: "100.00",
			taxRate:  "19.255",
			want:     "19.26", // 19.255 rounds half-up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTax(d(tt.subtotal), d(tt.taxRate))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestCalculateTotal(t *testing.T) {
	got := CalculateTotal(d("29.99"), d("6.00"))
	assert.True(t, got.Equal(d("35.99")), "got %s", got)
}
