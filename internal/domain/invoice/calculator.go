package invoice

import "github.com/shopspring/decimal"

// Money arithmetic rounds to cents at three independent points: per
// line item, on the tax amount, and on the total. Rounding is never
// deferred to the end; summing unrounded products can land on a
// different cent than summing rounded ones. decimal.Round is half away
// from zero, which on this non-negative domain is half-up.

// CalculateLineItemAmount derives a line amount: round(quantity * unitPrice, 2)
func CalculateLineItemAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// CalculateSubtotal sums already-rounded line amounts, with no further rounding
func CalculateSubtotal(items []*LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	return subtotal
}

// CalculateTax derives the tax amount: round(subtotal * taxRate/100, 2)
func CalculateTax(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate.Shift(-2)).Round(2)
}

// CalculateTotal derives the grand total: round(subtotal + tax, 2)
func CalculateTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Round(2)
}
