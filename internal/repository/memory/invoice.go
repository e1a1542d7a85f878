package memory

import (
	"context"
	"sync"

	"github.com/facturo/facturo/internal/domain/invoice"
	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/facturo/facturo/internal/logger"
)

// invoiceRepository is an in-memory, insertion-ordered invoice store.
// Updates are last write wins. Invoices are deep-copied on the way in
// and out so callers can never mutate stored state through a shared
// pointer.
type invoiceRepository struct {
	mu       sync.RWMutex
	byID     map[string]*invoice.Invoice
	ordering []string
	logger   *logger.Logger
}

func NewInvoiceRepository(logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{
		byID:   make(map[string]*invoice.Invoice),
		logger: logger,
	}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[inv.ID]; ok {
		return ierr.NewError("invoice already exists").
			WithHintf("invoice %s already exists", inv.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	r.byID[inv.ID] = inv.Copy()
	r.ordering = append(r.ordering, inv.ID)
	r.logger.Debugw("stored invoice", "invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber)
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.byID[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return inv.Copy(), nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[inv.ID]; !ok {
		return ierr.NewError("invoice not found").
			WithHintf("invoice %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}

	r.byID[inv.ID] = inv.Copy()
	r.logger.Debugw("updated invoice", "invoice_id", inv.ID)
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ierr.NewError("invoice not found").
			WithHintf("invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	delete(r.byID, id)
	for idx, existing := range r.ordering {
		if existing == id {
			r.ordering = append(r.ordering[:idx], r.ordering[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoices := make([]*invoice.Invoice, 0, len(r.ordering))
	for _, id := range r.ordering {
		invoices = append(invoices, r.byID[id].Copy())
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
