package memory

import (
	"context"
	"testing"
	"time"

	"github.com/facturo/facturo/internal/domain/invoice"
	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/facturo/facturo/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(id string) *invoice.Invoice {
	amount := decimal.RequireFromString("10.00")
	return &invoice.Invoice{
		ID:            id,
		InvoiceNumber: "INV-000000-001",
		Client:        invoice.Client{Name: "Acme", Address: "1 Main St"},
		InvoiceDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		LineItems: []*invoice.LineItem{
			{ID: "item-1", Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: amount, Amount: amount},
		},
		Subtotal: amount,
		TaxRate:  decimal.Zero,
		Tax:      decimal.Zero,
		Total:    amount,
		Status:   "draft",
	}
}

func TestInvoiceRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(logger.NewNopLogger())

	inv := newTestInvoice("inv_1")
	require.NoError(t, repo.Create(ctx, inv))

	err := repo.Create(ctx, inv)
	assert.True(t, ierr.IsAlreadyExists(err))

	got, err := repo.Get(ctx, "inv_1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Client.Name)

	_, err = repo.Get(ctx, "inv_missing")
	assert.True(t, ierr.IsNotFound(err))

	got.Client.Name = "Updated"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.Get(ctx, "inv_1")
	require.NoError(t, err)
	assert.Equal(t, "Updated", again.Client.Name)

	err = repo.Update(ctx, newTestInvoice("inv_missing"))
	assert.True(t, ierr.IsNotFound(err))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Delete(ctx, "inv_1"))
	assert.True(t, ierr.IsNotFound(repo.Delete(ctx, "inv_1")))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestInvoiceRepository_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(logger.NewNopLogger())

	for _, id := range []string{"inv_a", "inv_b", "inv_c"} {
		require.NoError(t, repo.Create(ctx, newTestInvoice(id)))
	}
	require.NoError(t, repo.Delete(ctx, "inv_b"))
	require.NoError(t, repo.Create(ctx, newTestInvoice("inv_d")))

	invoices, err := repo.List(ctx)
	require.NoError(t, err)
	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
	}
	assert.Equal(t, []string{"inv_a", "inv_c", "inv_d"}, ids)
}

func TestInvoiceRepository_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository(logger.NewNopLogger())

	inv := newTestInvoice("inv_1")
	require.NoError(t, repo.Create(ctx, inv))

	// mutating the caller's copy after create does not leak into the store
	inv.Client.Name = "Mutated"
	inv.LineItems[0].Description = "Mutated"

	got, err := repo.Get(ctx, "inv_1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Client.Name)
	assert.Equal(t, "Widget", got.LineItems[0].Description)

	// mutating a read copy does not leak either
	got.LineItems[0].Description = "Mutated again"
	fresh, err := repo.Get(ctx, "inv_1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", fresh.LineItems[0].Description)
}
