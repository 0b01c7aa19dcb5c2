package invoice

import (
	"testing"
	"time"

	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemAttachToDerivesTotal(t *testing.T) {
	now := time.Now().UTC()
	item := &LineItem{
		Rate:     decimal.RequireFromString("10.10"),
		Quantity: decimal.NewFromInt(3),
		Total:    decimal.NewFromInt(999),
	}

	item.AttachTo(1234567890, now)

	assert.True(t, item.Total.Equal(decimal.RequireFromString("30.30")), "got %s", item.Total)
	assert.Equal(t, int64(1234567890), item.InvoiceNumber)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, now, item.CreatedAt)
	require.NoError(t, item.Validate())
}

func TestLineItemValidate(t *testing.T) {
	item := &LineItem{Rate: decimal.NewFromInt(-1), Quantity: decimal.NewFromInt(1)}
	item.AttachTo(1234567890, time.Now())
	assert.True(t, ierr.IsValidation(item.Validate()))

	item = &LineItem{Rate: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(2), Total: decimal.NewFromInt(5)}
	assert.True(t, ierr.IsValidation(item.Validate()))
}

func TestInvoiceAddLineItemsKeepsOrder(t *testing.T) {
	inv := &Invoice{InvoiceNumber: 1234567890, State: types.InvoiceStateDraft}
	first := &LineItem{Description: "first", Rate: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)}
	second := &LineItem{Description: "second", Rate: decimal.NewFromInt(2), Quantity: decimal.NewFromInt(2)}
	third := &LineItem{Description: "third", Rate: decimal.NewFromInt(3), Quantity: decimal.NewFromInt(3)}
	for _, item := range []*LineItem{first, second, third} {
		item.AttachTo(inv.InvoiceNumber, time.Now())
	}

	inv.AddLineItem(first)
	inv.AddLineItems([]*LineItem{second, third})

	require.Len(t, inv.LineItems, 3)
	assert.Equal(t, "first", inv.LineItems[0].Description)
	assert.Equal(t, "third", inv.LineItems[2].Description)
	assert.True(t, inv.LineItemsTotal().Equal(decimal.NewFromInt(14)))
	assert.NoError(t, inv.Validate())
}

func TestInvoiceValidate(t *testing.T) {
	inv := &Invoice{InvoiceNumber: 42, State: types.InvoiceStateDraft}
	assert.True(t, ierr.IsValidation(inv.Validate()))

	inv = &Invoice{InvoiceNumber: 1234567890, State: "PAID"}
	assert.True(t, ierr.IsValidation(inv.Validate()))

	inv = &Invoice{InvoiceNumber: 1234567890, State: types.InvoiceStateDraft}
	inv.AddLineItem(&LineItem{InvoiceNumber: 1111111111})
	assert.True(t, ierr.IsValidation(inv.Validate()))
}

func TestDueDateFrom(t *testing.T) {
	issuedAt := time.Date(2026, time.January, 15, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC), DueDateFrom(issuedAt, 30))
}

func TestRandomNumberGeneratorRange(t *testing.T) {
	gen := NewRandomNumberGenerator()
	for i := 0; i < 10000; i++ {
		n := gen.Next()
		require.GreaterOrEqual(t, n, types.InvoiceNumberMin)
		require.LessOrEqual(t, n, types.InvoiceNumberMax)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError(1234567890)
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "1234567890")
}

func TestInvoiceCloneIsDeep(t *testing.T) {
	due := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	inv := &Invoice{InvoiceNumber: 1234567890, DueDate: &due}
	inv.AddLineItem(&LineItem{ID: "inv_line_1", Rate: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)})

	c := inv.Clone()
	c.LineItems[0].Description = "changed"
	c.AddLineItem(&LineItem{ID: "inv_line_2"})
	*c.DueDate = due.AddDate(0, 0, 1)

	assert.Empty(t, inv.LineItems[0].Description)
	assert.Len(t, inv.LineItems, 1)
	assert.Equal(t, due, *inv.DueDate)
	assert.Nil(t, (*Invoice)(nil).Clone())
}
