package dto

import (
	"context"
	"strings"

	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/flexprice/invoicing/internal/validator"
	"github.com/shopspring/decimal"
)

// CustomerRequest identifies the billed customer
type CustomerRequest struct {
	// name is the display name of the customer
	Name string `json:"name,omitempty" validate:"omitempty,max=255"`

	// email is where the issued invoice notification is sent
	Email string `json:"email" validate:"required,email,max=255"`

	// tax_id is the customer's tax identifier, propagated with traces as baggage
	TaxID string `json:"tax_id,omitempty" validate:"omitempty,max=100"`
}

// CreateInvoiceRequest represents the request payload for creating a new invoice
type CreateInvoiceRequest struct {
	Customer CustomerRequest `json:"customer"`

	// currency is the three-letter ISO currency code (e.g., USD, EUR) for the invoice
	Currency string `json:"currency,omitempty" validate:"omitempty,len=3"`

	// line_items are optional items added to the draft right away
	LineItems []CreateInvoiceLineItemRequest `json:"line_items,omitempty" validate:"omitempty,dive"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	for _, item := range r.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToInvoice converts the request to a draft invoice owned by the tenant in ctx
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	inv := &invoice.Invoice{
		Customer: invoice.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			TaxID: r.Customer.TaxID,
		},
		Currency:  strings.ToLower(r.Currency),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	for _, item := range r.LineItems {
		inv.AddLineItem(item.ToLineItem())
	}
	return inv
}

// CreateInvoiceLineItemRequest represents a single billable entry.
// The total is always derived as rate times quantity.
type CreateInvoiceLineItemRequest struct {
	// description is an optional label for the line item
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`

	// rate is the unit price
	Rate decimal.Decimal `json:"rate"`

	// quantity is the number of units billed
	Quantity decimal.Decimal `json:"quantity"`
}

func (r CreateInvoiceLineItemRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Rate.IsNegative() {
		return ierr.NewError("rate must be non negative").
			WithHint("Line item rate cannot be negative").
			WithReportableDetails(map[string]any{"rate": r.Rate.String()}).
			Mark(ierr.ErrValidation)
	}

	if r.Quantity.IsNegative() {
		return ierr.NewError("quantity must be non negative").
			WithHint("Line item quantity cannot be negative").
			WithReportableDetails(map[string]any{"quantity": r.Quantity.String()}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

func (r CreateInvoiceLineItemRequest) ToLineItem() *invoice.LineItem {
	return &invoice.LineItem{
		Description: r.Description,
		Rate:        r.Rate,
		Quantity:    r.Quantity,
	}
}

// AddLineItemsRequest adds one or more line items to a draft invoice
type AddLineItemsRequest struct {
	LineItems []CreateInvoiceLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

func (r *AddLineItemsRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	for _, item := range r.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *AddLineItemsRequest) ToLineItems() []*invoice.LineItem {
	items := make([]*invoice.LineItem, 0, len(r.LineItems))
	for _, item := range r.LineItems {
		items = append(items, item.ToLineItem())
	}
	return items
}

// InvoiceResponse represents the response payload containing invoice information
type InvoiceResponse struct {
	*invoice.Invoice
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}
