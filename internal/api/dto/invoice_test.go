package dto

import (
	"testing"

	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateInvoiceRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: CreateInvoiceRequest{
				Customer: CustomerRequest{Email: "a@b.com", TaxID: "DE123"},
				Currency: "USD",
				LineItems: []CreateInvoiceLineItemRequest{
					{Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(3)},
				},
			},
		},
		{
			name:    "missing email",
			req:     CreateInvoiceRequest{Customer: CustomerRequest{Name: "Jane"}},
			wantErr: true,
		},
		{
			name:    "malformed email",
			req:     CreateInvoiceRequest{Customer: CustomerRequest{Email: "not-an-email"}},
			wantErr: true,
		},
		{
			name:    "bad currency",
			req:     CreateInvoiceRequest{Customer: CustomerRequest{Email: "a@b.com"}, Currency: "dollars"},
			wantErr: true,
		},
		{
			name: "negative quantity",
			req: CreateInvoiceRequest{
				Customer: CustomerRequest{Email: "a@b.com"},
				LineItems: []CreateInvoiceLineItemRequest{
					{Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(-1)},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err), "expected validation error, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateInvoiceRequestToInvoice(t *testing.T) {
	req := CreateInvoiceRequest{
		Customer: CustomerRequest{Name: "Jane", Email: "a@b.com", TaxID: "DE123"},
		Currency: "USD",
		LineItems: []CreateInvoiceLineItemRequest{
			{Description: "first", Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(3)},
			{Description: "second", Rate: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)},
		},
	}

	inv := req.ToInvoice(testutil.SetupContext())
	assert.Equal(t, "usd", inv.Currency)
	assert.Equal(t, "DE123", inv.Customer.TaxID)
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "first", inv.LineItems[0].Description)
	assert.NotEmpty(t, inv.TenantID)
}

func TestAddLineItemsRequestValidate(t *testing.T) {
	req := AddLineItemsRequest{}
	assert.True(t, ierr.IsValidation(req.Validate()))

	req.LineItems = []CreateInvoiceLineItemRequest{{Rate: decimal.NewFromInt(-5), Quantity: decimal.NewFromInt(1)}}
	assert.True(t, ierr.IsValidation(req.Validate()))

	req.LineItems[0].Rate = decimal.NewFromInt(5)
	require.NoError(t, req.Validate())
	assert.Len(t, req.ToLineItems(), 1)
}
