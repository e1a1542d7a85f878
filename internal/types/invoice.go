package types

import (
	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice has been created but not yet sent
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent indicates the invoice has been handed off to the client
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusPaid indicates payment has been confirmed by the caller
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusOverdue indicates the caller has flagged the invoice as past due.
	// The core never derives this from the due date; the transition is caller-driven.
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
