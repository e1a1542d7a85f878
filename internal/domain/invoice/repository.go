package invoice

import "context"

// Repository defines the interface for invoice persistence operations.
// The core never touches storage; the caller owns the collection.
type Repository interface {
	// Create stores a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update replaces an existing invoice (last write wins)
	Update(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice by ID
	Delete(ctx context.Context, id string) error

	// List retrieves all invoices in insertion order
	List(ctx context.Context) ([]*Invoice, error)

	// Count returns the total number of stored invoices
	Count(ctx context.Context) (int, error)
}
