package invoice

import (
	"time"

	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem represents a single billable entry of an invoice
type LineItem struct {
	ID            string          `db:"id" json:"id"`
	InvoiceNumber int64           `db:"invoice_number" json:"invoice_number"`
	Description   string          `db:"description" json:"description,omitempty"`
	Rate          decimal.Decimal `db:"rate" json:"rate"`
	Quantity      decimal.Decimal `db:"quantity" json:"quantity"`
	Total         decimal.Decimal `db:"total" json:"total"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// AttachTo stamps the item with its owning invoice and derives the total.
// The total is never taken from the caller.
func (li *LineItem) AttachTo(invoiceNumber int64, now time.Time) {
	if li.ID == "" {
		li.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM)
	}
	li.InvoiceNumber = invoiceNumber
	li.Total = li.Rate.Mul(li.Quantity)
	if li.CreatedAt.IsZero() {
		li.CreatedAt = now
	}
}

// Validate validates the invoice line item
func (li *LineItem) Validate() error {
	if li.Rate.IsNegative() {
		return ierr.NewError("invoice line item validation failed").WithHint("rate must be non negative").Mark(ierr.ErrValidation)
	}

	if li.Quantity.IsNegative() {
		return ierr.NewError("invoice line item validation failed").WithHint("quantity must be non negative").Mark(ierr.ErrValidation)
	}

	if !li.Total.Equal(li.Rate.Mul(li.Quantity)) {
		return ierr.NewError("invoice line item validation failed").WithHint("total must equal rate times quantity").Mark(ierr.ErrValidation)
	}

	return nil
}
