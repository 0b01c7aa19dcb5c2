package postgres

import (
	"testing"
	"time"

	"github.com/flexprice/invoicing/internal/domain/invoice"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceRowRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	due := invoice.DueDateFrom(now, 30)

	inv := &invoice.Invoice{
		InvoiceNumber: 1234567890,
		Customer:      invoice.Customer{Name: "Jane", Email: "jane@example.com", TaxID: "DE123"},
		State:         types.InvoiceStateIssued,
		Notified:      true,
		Currency:      "usd",
		Subtotal:      decimal.NewFromInt(30),
		TaxAmount:     decimal.NewFromInt(3),
		Total:         decimal.NewFromInt(33),
		InvoiceDate:   now,
		DueDate:       &due,
		BaseModel:     types.BaseModel{TenantID: "tenant_1", CreatedAt: now, UpdatedAt: now},
	}
	first := &invoice.LineItem{Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(2)}
	second := &invoice.LineItem{Rate: decimal.NewFromInt(5), Quantity: decimal.NewFromInt(2)}
	first.AttachTo(inv.InvoiceNumber, now)
	second.AttachTo(inv.InvoiceNumber, now)
	inv.AddLineItems([]*invoice.LineItem{first, second})

	row := toInvoiceRow(inv)
	assert.Equal(t, "ISSUED", row.State)
	assert.True(t, row.DueDate.Valid)

	items := toLineItemRows(inv)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, 1, items[1].Position)
	assert.Equal(t, "tenant_1", items[1].TenantID)

	got := fromRows(row, items)
	assert.Equal(t, inv.InvoiceNumber, got.InvoiceNumber)
	assert.Equal(t, inv.Customer, got.Customer)
	assert.Equal(t, inv.State, got.State)
	assert.True(t, got.Total.Equal(inv.Total))
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
	require.Len(t, got.LineItems, 2)
	assert.Equal(t, first.ID, got.LineItems[0].ID)
	assert.True(t, got.LineItems[1].Total.Equal(decimal.NewFromInt(10)))
}

func TestFromRowsWithoutDueDate(t *testing.T) {
	row := toInvoiceRow(&invoice.Invoice{InvoiceNumber: 1000000000, State: types.InvoiceStateDraft})
	assert.False(t, row.DueDate.Valid)

	got := fromRows(row, nil)
	assert.Nil(t, got.DueDate)
	assert.Empty(t, got.LineItems)
}
