package dto

import (
	"time"

	"github.com/facturo/facturo/internal/domain/invoice"
	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/facturo/facturo/internal/types"
	"github.com/facturo/facturo/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the raw invoice form as entered: dates are
// strings, numbers are plain floats. Validation coerces it into typed
// form data or reports every violation at once.
type CreateInvoiceRequest struct {
	// client_name is the billed party's name
	ClientName string `json:"client_name" validate:"required,max=100"`

	// client_address is the billed party's postal address, may span lines
	ClientAddress string `json:"client_address" validate:"required,max=500"`

	// invoice_date is the issue date in YYYY-MM-DD form
	InvoiceDate string `json:"invoice_date" validate:"required"`

	// due_date is the payment deadline in YYYY-MM-DD form, on or after invoice_date
	DueDate string `json:"due_date" validate:"required"`

	// line_items are the billable rows, at least one
	LineItems []CreateLineItemRequest `json:"line_items" validate:"required,min=1,dive"`

	// tax_rate is the percentage applied to the subtotal, 0 to 100
	TaxRate float64 `json:"tax_rate" validate:"gte=0,lte=100"`
}

// UpdateInvoiceRequest carries the full edited form; amounts are always
// re-derived from it
type UpdateInvoiceRequest = CreateInvoiceRequest

// CreateLineItemRequest is one raw line of the invoice form
type CreateLineItemRequest struct {
	Description string  `json:"description" validate:"required,max=200"`
	Quantity    float64 `json:"quantity" validate:"gt=0,lte=10000"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0,lte=1000000"`
}

// Validate checks every structural and cross-field rule and collects
// all violations, keyed by field path, before returning. The result is
// a marked validation error carrying the field map as reportable
// details; expected-invalid input never panics.
func (r *CreateInvoiceRequest) Validate() error {
	fieldErrs := r.fieldErrors()
	if fieldErrs.Any() {
		return ierr.NewError("invoice form validation failed").
			WithHint("One or more invoice fields are invalid").
			WithReportableDetails(fieldErrs.ToDetails()).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateInvoiceRequest) fieldErrors() validator.FieldErrors {
	fieldErrs := validator.ValidateStruct(r)

	var invoiceDate, dueDate time.Time
	var invErr, dueErr error

	if r.InvoiceDate != "" {
		if invoiceDate, invErr = types.ParseFormDate(r.InvoiceDate); invErr != nil {
			fieldErrs.Add("invoice_date", "must be a valid date")
		}
	}
	if r.DueDate != "" {
		if dueDate, dueErr = types.ParseFormDate(r.DueDate); dueErr != nil {
			fieldErrs.Add("due_date", "must be a valid date")
		}
	}

	// cross-field rule: reported against due_date, same-day allowed
	if invErr == nil && dueErr == nil && r.InvoiceDate != "" && r.DueDate != "" {
		if dueDate.Before(invoiceDate) {
			fieldErrs.Add("due_date", "must be on or after the invoice date")
		}
	}

	return fieldErrs
}

// ToFormData converts an accepted request into the typed form data the
// builder consumes. Call Validate first.
func (r *CreateInvoiceRequest) ToFormData() (invoice.FormData, error) {
	invoiceDate, err := types.ParseFormDate(r.InvoiceDate)
	if err != nil {
		return invoice.FormData{}, err
	}
	dueDate, err := types.ParseFormDate(r.DueDate)
	if err != nil {
		return invoice.FormData{}, err
	}

	return invoice.FormData{
		ClientName:    r.ClientName,
		ClientAddress: r.ClientAddress,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		LineItems: lo.Map(r.LineItems, func(item CreateLineItemRequest, _ int) invoice.FormLineItem {
			return invoice.FormLineItem{
				Description: item.Description,
				Quantity:    decimal.NewFromFloat(item.Quantity),
				UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
			}
		}),
		TaxRate: decimal.NewFromFloat(r.TaxRate),
	}, nil
}

// UpdateInvoiceStatusRequest drives the caller-owned status transitions
// (paid, overdue). The core never performs these automatically.
type UpdateInvoiceStatusRequest struct {
	Status types.InvoiceStatus `json:"status" validate:"required"`
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	return r.Status.Validate()
}

// ClientResponse includes the short display label used on list views
type ClientResponse struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	DisplayAddress string `json:"display_address"`
}

type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse mirrors the stored invoice plus display-formatted
// fields. Display values are cosmetic; the decimal fields are the
// stored amounts, unrounded by formatting.
type InvoiceResponse struct {
	ID                 string              `json:"id"`
	InvoiceNumber      string              `json:"invoice_number"`
	Client             ClientResponse      `json:"client"`
	InvoiceDate        time.Time           `json:"invoice_date"`
	DueDate            time.Time           `json:"due_date"`
	LineItems          []LineItemResponse  `json:"line_items"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	TaxRate            decimal.Decimal     `json:"tax_rate"`
	Tax                decimal.Decimal     `json:"tax"`
	Total              decimal.Decimal     `json:"total"`
	Status             types.InvoiceStatus `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	DisplayInvoiceDate string              `json:"display_invoice_date"`
	DisplayDueDate     string              `json:"display_due_date"`
	DisplaySubtotal    string              `json:"display_subtotal"`
	DisplayTax         string              `json:"display_tax"`
	DisplayTotal       string              `json:"display_total"`
}

func NewInvoiceResponse(inv *invoice.Invoice, currency string) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Client: ClientResponse{
			Name:           inv.Client.Name,
			Address:        inv.Client.Address,
			DisplayAddress: inv.Client.DisplayAddress(),
		},
		InvoiceDate: inv.InvoiceDate,
		DueDate:     inv.DueDate,
		LineItems: lo.Map(inv.LineItems, func(item *invoice.LineItem, _ int) LineItemResponse {
			return LineItemResponse{
				ID:          item.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Amount:      item.Amount,
			}
		}),
		Subtotal:           inv.Subtotal,
		TaxRate:            inv.TaxRate,
		Tax:                inv.Tax,
		Total:              inv.Total,
		Status:             inv.Status,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
		DisplayInvoiceDate: types.FormatDate(inv.InvoiceDate),
		DisplayDueDate:     types.FormatDate(inv.DueDate),
		DisplaySubtotal:    types.FormatCurrency(inv.Subtotal, currency),
		DisplayTax:         types.FormatCurrency(inv.Tax, currency),
		DisplayTotal:       types.FormatCurrency(inv.Total, currency),
	}
}

type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

// SendInvoiceResponse acknowledges the status stamp. Email dispatch is
// a named placeholder, not an integration.
type SendInvoiceResponse struct {
	Invoice  *InvoiceResponse `json:"invoice"`
	Delivery string           `json:"delivery"`
}

// DownloadInvoiceResponse acknowledges a download request. PDF
// rendering is a named placeholder, not an integration.
type DownloadInvoiceResponse struct {
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	DownloadToken string `json:"download_token"`
	Message       string `json:"message"`
}
