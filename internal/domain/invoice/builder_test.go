package invoice

import (
	"testing"
	"time"

	ierr "github.com/facturo/facturo/internal/errors"
	"github.com/facturo/facturo/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.UnixMilli(1705752000123).UTC()
}

func testBuilder() *Builder {
	return NewBuilder(
		WithClock(testClock),
		WithIDGenerator(func() string { return "inv_test_0001" }),
		WithRandSource(func(max int) int { return 7 }),
	)
}

func validForm() FormData {
	return FormData{
		ClientName:    "Acme",
		ClientAddress: "1 Main St",
		InvoiceDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		LineItems: []FormLineItem{
			{Description: "Widget", Quantity: d("3"), UnitPrice: d("9.995")},
		},
		TaxRate: d("20"),
	}
}

func TestBuild(t *testing.T) {
	inv, err := testBuilder().Build(validForm())
	require.NoError(t, err)

	assert.Equal(t, "inv_test_0001", inv.ID)
	assert.Equal(t, "INV-000123-007", inv.InvoiceNumber)
	assert.Equal(t, "Acme", inv.Client.Name)
	assert.Equal(t, "1 Main St", inv.Client.Address)
	assert.Equal(t, types.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, testClock(), inv.CreatedAt)
	assert.Equal(t, testClock(), inv.UpdatedAt)

	require.Len(t, inv.LineItems, 1)
	item := inv.LineItems[0]
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "Widget", item.Description)
	assert.True(t, item.Amount.Equal(d("29.99")), "amount %s", item.Amount)

	assert.True(t, inv.Subtotal.Equal(d("29.99")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.Tax.Equal(d("6.00")), "tax %s", inv.Tax)
	assert.True(t, inv.Total.Equal(d("35.99")), "total %s", inv.Total)
}

func TestBuild_PositionalLineItemIDs(t *testing.T) {
	form := validForm()
	form.LineItems = append(form.LineItems,
		FormLineItem{Description: "Gadget", Quantity: d("1"), UnitPrice: d("5")},
		FormLineItem{Description: "Gizmo", Quantity: d("2"), UnitPrice: d("2.50")},
	)

	inv, err := testBuilder().Build(form)
	require.NoError(t, err)
	require.Len(t, inv.LineItems, 3)
	assert.Equal(t, "item-1", inv.LineItems[0].ID)
	assert.Equal(t, "item-2", inv.LineItems[1].ID)
	assert.Equal(t, "item-3", inv.LineItems[2].ID)
}

func TestBuild_Deterministic(t *testing.T) {
	b := testBuilder()
	first, err := b.Build(validForm())
	require.NoError(t, err)
	second, err := b.Build(validForm())
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestBuild_RoundTrip(t *testing.T) {
	inv, err := testBuilder().Build(validForm())
	require.NoError(t, err)

	// re-deriving from the stored line items reproduces the stored
	// subtotal, tax and total exactly
	subtotal := CalculateSubtotal(inv.LineItems)
	tax := CalculateTax(subtotal, inv.TaxRate)
	total := CalculateTotal(subtotal, tax)

	assert.True(t, subtotal.Equal(inv.Subtotal))
	assert.True(t, tax.Equal(inv.Tax))
	assert.True(t, total.Equal(inv.Total))

	require.NoError(t, inv.Validate())
}

func TestBuild_UpperBounds(t *testing.T) {
	form := validForm()
	form.LineItems = []FormLineItem{
		{Description: "Bulk", Quantity: d("10000"), UnitPrice: d("1000000")},
	}
	form.TaxRate = d("0")

	inv, err := testBuilder().Build(form)
	require.NoError(t, err)
	assert.True(t, inv.Subtotal.Equal(d("10000000000.00")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.Total.Equal(d("10000000000.00")), "total %s", inv.Total)
}

func TestBuild_ContractViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FormData)
	}{
		{
			name:   "no line items",
			mutate: func(f *FormData) { f.LineItems = nil },
		},
		{
			name:   "empty client name",
			mutate: func(f *FormData) { f.ClientName = "" },
		},
		{
			name: "zero quantity",
			mutate: func(f *FormData) {
				f.LineItems[0].Quantity = d("0")
			},
		},
		{
			name: "negative unit price",
			mutate: func(f *FormData) {
				f.LineItems[0].UnitPrice = d("-1")
			},
		},
		{
			name:   "tax rate above 100",
			mutate: func(f *FormData) { f.TaxRate = d("150") },
		},
		{
			name: "due date before invoice date",
			mutate: func(f *FormData) {
				f.DueDate = f.InvoiceDate.AddDate(0, 0, -1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			inv, err := testBuilder().Build(form)
			assert.Nil(t, inv)
			assert.True(t, ierr.IsInvalidOperation(err), "expected invalid operation, got %v", err)
		})
	}
}

func TestRebuild(t *testing.T) {
	b := testBuilder()
	original, err := b.Build(validForm())
	require.NoError(t, err)

	later := testClock().Add(time.Hour)
	editBuilder := NewBuilder(
		WithClock(func() time.Time { return later }),
		WithIDGenerator(func() string { return "inv_should_not_be_used" }),
		WithRandSource(func(max int) int { return 0 }),
	)

	edited := validForm()
	edited.LineItems[0].Quantity = d("4")
	rebuilt, err := editBuilder.Rebuild(original, edited)
	require.NoError(t, err)

	// identity survives the edit
	assert.Equal(t, original.ID, rebuilt.ID)
	assert.Equal(t, original.InvoiceNumber, rebuilt.InvoiceNumber)
	assert.Equal(t, original.Status, rebuilt.Status)
	assert.Equal(t, original.CreatedAt, rebuilt.CreatedAt)
	assert.Equal(t, later, rebuilt.UpdatedAt)

	// amounts are fully re-derived
	assert.True(t, rebuilt.Subtotal.Equal(d("39.98")), "subtotal %s", rebuilt.Subtotal)
	assert.True(t, rebuilt.Tax.Equal(d("8.00")), "tax %s", rebuilt.Tax)
	assert.True(t, rebuilt.Total.Equal(d("47.98")), "total %s", rebuilt.Total)
}

func TestSend(t *testing.T) {
	inv, err := testBuilder().Build(validForm())
	require.NoError(t, err)

	sent := Send(inv)
	assert.Equal(t, types.InvoiceStatusSent, sent.Status)

	// everything except status is untouched, timestamps included
	expected := inv.Copy()
	expected.Status = types.InvoiceStatusSent
	assert.Equal(t, expected, sent)

	// the input invoice is not mutated
	assert.Equal(t, types.InvoiceStatusDraft, inv.Status)

	// line items are deep copied
	sent.LineItems[0].Description = "changed"
	assert.Equal(t, "Widget", inv.LineItems[0].Description)
}

func TestSend_AnyStatus(t *testing.T) {
	inv, err := testBuilder().Build(validForm())
	require.NoError(t, err)

	inv.Status = types.InvoiceStatusOverdue
	assert.Equal(t, types.InvoiceStatusSent, Send(inv).Status)
}

func TestNextInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-000123-007", testBuilder().NextInvoiceNumber())

	// default sources still produce the documented shape
	number := NewBuilder().NextInvoiceNumber()
	assert.Regexp(t, `^INV-\d{6}-\d{3}$`, number)
}

func TestInvoiceValidate_DetectsDrift(t *testing.T) {
	inv, err := testBuilder().Build(validForm())
	require.NoError(t, err)
	require.NoError(t, inv.Validate())

	tampered := inv.Copy()
	tampered.Total = tampered.Total.Add(d("0.01"))
	err = tampered.Validate()
	assert.True(t, ierr.IsInvalidOperation(err))

	tampered = inv.Copy()
	tampered.LineItems[0].Amount = d("1.00")
	err = tampered.Validate()
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestClientDisplayAddress(t *testing.T) {
	c := Client{Name: "Acme", Address: "1 Main St\n75001 Paris\nFrance"}
	assert.Equal(t, "1 Main St", c.DisplayAddress())

	single := Client{Name: "Acme", Address: "1 Main St"}
	assert.Equal(t, "1 Main St", single.DisplayAddress())
}
