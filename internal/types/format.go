package types

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display formatting follows a single fixed locale (French conventions:
// comma decimal separator, day-first dates, symbol after the amount).
// Formatting is cosmetic only and never re-rounds stored amounts.

const displayDateLayout = "02/01/2006"

var displayPrinter = message.NewPrinter(language.French)

// FormatCurrency renders a monetary amount for display, e.g. "29,99 €".
// An empty currency code falls back to DefaultCurrency.
func FormatCurrency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	value := number.Decimal(amount.InexactFloat64(), number.Scale(2))
	return displayPrinter.Sprintf("%v %s", value, GetCurrencySymbol(code))
}

// FormatDate renders a date for display, e.g. "15/01/2024"
func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}
