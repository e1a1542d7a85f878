package invoice

import (
	"strings"
	"time"

	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/facturo/facturo/internal/types"
	"github.com/shopspring/decimal"
)

// Client is the billed party on an invoice
type Client struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// DisplayAddress returns the first line of the address, used as the
// short client label on list views
func (c Client) DisplayAddress() string {
	if idx := strings.IndexByte(c.Address, '\n'); idx >= 0 {
		return strings.TrimSpace(c.Address[:idx])
	}
	return c.Address
}

// LineItem is a single billable row on an invoice. Amount is always
// derived from Quantity and UnitPrice, never set independently.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice represents the invoice domain model. Subtotal, Tax and Total
// are derived by the builder and never mutated independently.
type Invoice struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	Client        Client              `json:"client"`
	InvoiceDate   time.Time           `json:"invoice_date"`
	DueDate       time.Time           `json:"due_date"`
	LineItems     []*LineItem         `json:"line_items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxRate       decimal.Decimal     `json:"tax_rate"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	Status        types.InvoiceStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Copy returns a deep copy of the invoice
func (i *Invoice) Copy() *Invoice {
	out := *i
	out.LineItems = make([]*LineItem, len(i.LineItems))
	for idx, item := range i.LineItems {
		cp := *item
		out.LineItems[idx] = &cp
	}
	return &out
}

// Validate rechecks the structural invariants of an assembled invoice.
// A failure here is a programming error, not user input: built invoices
// always satisfy these by construction.
func (i *Invoice) Validate() error {
	if len(i.LineItems) == 0 {
		return ierr.NewError("invoice has no line items").
			WithHint("an invoice must have at least one line item").
			Mark(ierr.ErrInvalidOperation)
	}

	if i.DueDate.Before(i.InvoiceDate) {
		return ierr.NewError("invoice due date precedes invoice date").
			WithHint("due date must be on or after the invoice date").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := i.Status.Validate(); err != nil {
		return err
	}

	for _, item := range i.LineItems {
		if !item.Amount.Equal(CalculateLineItemAmount(item.Quantity, item.UnitPrice)) {
			return ierr.NewError("line item amount drifted from quantity and unit price").
				WithHintf("line item %s amount is not quantity * unit price", item.ID).
				Mark(ierr.ErrInvalidOperation)
		}
	}

	if !i.Subtotal.Equal(CalculateSubtotal(i.LineItems)) {
		return ierr.NewError("invoice subtotal drifted from line items").
			WithHint("subtotal is not the sum of line item amounts").
			Mark(ierr.ErrInvalidOperation)
	}

	if !i.Tax.Equal(CalculateTax(i.Subtotal, i.TaxRate)) {
		return ierr.NewError("invoice tax drifted from subtotal and tax rate").
			WithHint("tax is not subtotal * tax rate").
			Mark(ierr.ErrInvalidOperation)
	}

	if !i.Total.Equal(CalculateTotal(i.Subtotal, i.Tax)) {
		return ierr.NewError("invoice total drifted from subtotal and tax").
			WithHint("total is not subtotal + tax").
			Mark(ierr.ErrInvalidOperation)
	}

	return nil
}
