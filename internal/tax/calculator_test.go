package tax

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator(percentage float64) Calculator {
	cfg := config.GetDefaultConfig()
	cfg.Tax.Percentage = percentage
	return NewFlatRateCalculator(cfg, logger.NewNoopLogger())
}

func draftInvoice(items ...*invoice.LineItem) *invoice.Invoice {
	inv := &invoice.Invoice{InvoiceNumber: 1234567890}
	for _, item := range items {
		item.AttachTo(inv.InvoiceNumber, time.Now().UTC())
		inv.AddLineItem(item)
	}
	return inv
}

func TestFlatRateCalculator(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		items      []*invoice.LineItem
		subtotal   string
		taxAmount  string
		total      string
	}{
		{
			name:       "no line items",
			percentage: 19,
			subtotal:   "0",
			taxAmount:  "0",
			total:      "0",
		},
		{
			name:       "zero rate",
			percentage: 0,
			items: []*invoice.LineItem{
				{Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(3)},
			},
			subtotal:  "30",
			taxAmount: "0",
			total:     "30",
		},
		{
			name:       "rounds tax to cents",
			percentage: 19,
			items: []*invoice.LineItem{
				{Rate: decimal.RequireFromString("10.55"), Quantity: decimal.NewFromInt(1)},
				{Rate: decimal.RequireFromString("2.5"), Quantity: decimal.NewFromInt(3)},
			},
			subtotal:  "18.05",
			taxAmount: "3.43",
			total:     "21.48",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := draftInvoice(tt.items...)
			taxed, err := newCalculator(tt.percentage).ComputeTaxes(context.Background(), inv)
			require.NoError(t, err)

			assert.True(t, decimal.RequireFromString(tt.subtotal).Equal(taxed.Subtotal), "subtotal %s", taxed.Subtotal)
			assert.True(t, decimal.RequireFromString(tt.taxAmount).Equal(taxed.TaxAmount), "tax %s", taxed.TaxAmount)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(taxed.Total), "total %s", taxed.Total)
			assert.Equal(t, inv.InvoiceNumber, taxed.InvoiceNumber)
		})
	}
}

func TestFlatRateCalculatorLeavesInputUntouched(t *testing.T) {
	inv := draftInvoice(&invoice.LineItem{Rate: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(1)})

	taxed, err := newCalculator(10).ComputeTaxes(context.Background(), inv)
	require.NoError(t, err)

	assert.True(t, taxed.TaxAmount.Equal(decimal.NewFromInt(10)))
	assert.True(t, inv.TaxAmount.IsZero())
}

func TestFlatRateCalculatorNilInvoice(t *testing.T) {
	_, err := newCalculator(10).ComputeTaxes(context.Background(), nil)
	assert.True(t, ierr.IsValidation(err))
}
