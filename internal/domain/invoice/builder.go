package invoice

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/facturo/facturo/internal/types"
	"github.com/shopspring/decimal"
)

// FormData is the validated, type-coerced invoice form. It is produced
// by the request validation layer; the builder trusts its contract.
type FormData struct {
	ClientName    string
	ClientAddress string
	InvoiceDate   time.Time
	DueDate       time.Time
	LineItems     []FormLineItem
	TaxRate       decimal.Decimal
}

// FormLineItem is one validated line of the invoice form
type FormLineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// validateContract rechecks the validation layer's guarantees. A
// failure means the caller bypassed validation; it is surfaced as an
// invalid operation, not a field error.
func (f FormData) validateContract() error {
	if f.ClientName == "" {
		return ierr.NewError("form data has empty client name").
			WithHint("builder called with unvalidated form data").
			Mark(ierr.ErrInvalidOperation)
	}

	if len(f.LineItems) == 0 {
		return ierr.NewError("form data has no line items").
			WithHint("builder called with unvalidated form data").
			Mark(ierr.ErrInvalidOperation)
	}

	for idx, item := range f.LineItems {
		if !item.Quantity.IsPositive() {
			return ierr.NewError("form data has non-positive quantity").
				WithHintf("line item %d quantity must be greater than zero", idx).
				Mark(ierr.ErrInvalidOperation)
		}
		if item.UnitPrice.IsNegative() {
			return ierr.NewError("form data has negative unit price").
				WithHintf("line item %d unit price must be non negative", idx).
				Mark(ierr.ErrInvalidOperation)
		}
	}

	if f.TaxRate.IsNegative() || f.TaxRate.GreaterThan(oneHundred) {
		return ierr.NewError("form data has out of range tax rate").
			WithHint("tax rate must be between 0 and 100").
			Mark(ierr.ErrInvalidOperation)
	}

	if f.DueDate.Before(f.InvoiceDate) {
		return ierr.NewError("form data due date precedes invoice date").
			WithHint("due date must be on or after the invoice date").
			Mark(ierr.ErrInvalidOperation)
	}

	return nil
}

// Builder assembles immutable Invoice records from validated form data.
// The clock, id and random sources are injectable so invoice number and
// id generation stay deterministic under test; everything downstream of
// them is a pure function of the form data.
type Builder struct {
	clock   func() time.Time
	newID   func() string
	randInt func(max int) int
}

type BuilderOption func(*Builder)

// WithClock overrides the wall clock used for timestamps and numbers
func WithClock(clock func() time.Time) BuilderOption {
	return func(b *Builder) { b.clock = clock }
}

// WithIDGenerator overrides the invoice id source
func WithIDGenerator(newID func() string) BuilderOption {
	return func(b *Builder) { b.newID = newID }
}

// WithRandSource overrides the random source for invoice number suffixes
func WithRandSource(randInt func(max int) int) BuilderOption {
	return func(b *Builder) { b.randInt = randInt }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		clock: time.Now,
		newID: func() string {
			return types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
		},
		randInt: rand.Intn,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build derives all monetary fields from the form and assembles a draft
// invoice. Re-running Build on the same form always yields identical
// subtotal, tax and total.
func (b *Builder) Build(form FormData) (*Invoice, error) {
	if err := form.validateContract(); err != nil {
		return nil, err
	}

	items := make([]*LineItem, len(form.LineItems))
	for idx, item := range form.LineItems {
		items[idx] = &LineItem{
			// line item ids are positional within the invoice
			ID:          fmt.Sprintf("item-%d", idx+1),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      CalculateLineItemAmount(item.Quantity, item.UnitPrice),
		}
	}

	subtotal := CalculateSubtotal(items)
	tax := CalculateTax(subtotal, form.TaxRate)
	total := CalculateTotal(subtotal, tax)

	now := b.clock().UTC()
	return &Invoice{
		ID:            b.newID(),
		InvoiceNumber: b.NextInvoiceNumber(),
		Client: Client{
			Name:    form.ClientName,
			Address: form.ClientAddress,
		},
		InvoiceDate: form.InvoiceDate,
		DueDate:     form.DueDate,
		LineItems:   items,
		Subtotal:    subtotal,
		TaxRate:     form.TaxRate,
		Tax:         tax,
		Total:       total,
		Status:      types.InvoiceStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rebuild re-derives an existing invoice from an edited form, keeping
// its identity (id, number, status, creation time) and bumping the
// updated-at timestamp. Storage is last-write-wins; the caller owns any
// concurrency control around it.
func (b *Builder) Rebuild(existing *Invoice, form FormData) (*Invoice, error) {
	rebuilt, err := b.Build(form)
	if err != nil {
		return nil, err
	}

	rebuilt.ID = existing.ID
	rebuilt.InvoiceNumber = existing.InvoiceNumber
	rebuilt.Status = existing.Status
	rebuilt.CreatedAt = existing.CreatedAt
	return rebuilt, nil
}

// NextInvoiceNumber generates a human-readable invoice number of the
// form INV-<6 trailing digits of unix millis>-<3 digit random>. Not
// guaranteed globally unique; the collision probability is accepted.
func (b *Builder) NextInvoiceNumber() string {
	millis := strconv.FormatInt(b.clock().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("INV-%s-%03d", millis, b.randInt(1000))
}

// Send returns a copy of the invoice with status forced to sent. It is
// a pure status stamp: no re-validation, no recomputation, and every
// other field, timestamps included, is left untouched.
func Send(inv *Invoice) *Invoice {
	out := inv.Copy()
	out.Status = types.InvoiceStatusSent
	return out
}
