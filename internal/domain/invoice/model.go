package invoice

import (
	"time"

	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/shopspring/decimal"
)

// Customer is the billed party of an invoice
type Customer struct {
	Name  string `db:"customer_name" json:"name,omitempty"`
	Email string `db:"customer_email" json:"email"`
	TaxID string `db:"customer_tax_id" json:"tax_id,omitempty"`
}

// Invoice represents the invoice domain model
type Invoice struct {
	InvoiceNumber int64              `db:"invoice_number" json:"invoice_number"`
	Customer      Customer           `json:"customer"`
	State         types.InvoiceState `db:"state" json:"state"`
	Notified      bool               `db:"notified" json:"notified"`
	Currency      string             `db:"currency" json:"currency"`
	Subtotal      decimal.Decimal    `db:"subtotal" json:"subtotal"`
	TaxAmount     decimal.Decimal    `db:"tax_amount" json:"tax_amount"`
	Total         decimal.Decimal    `db:"total" json:"total"`

	// InvoiceDate is the creation time while in draft and the issue time once issued
	InvoiceDate time.Time  `db:"invoice_date" json:"invoice_date"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`

	LineItems []*LineItem `json:"line_items"`
	types.BaseModel
}

// AddLineItem appends a line item keeping insertion order
func (i *Invoice) AddLineItem(item *LineItem) {
	i.LineItems = append(i.LineItems, item)
}

// AddLineItems appends line items keeping insertion order
func (i *Invoice) AddLineItems(items []*LineItem) {
	i.LineItems = append(i.LineItems, items...)
}

// LineItemsTotal sums the totals of all line items
func (i *Invoice) LineItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range i.LineItems {
		sum = sum.Add(item.Total)
	}
	return sum
}

// Clone returns a deep copy so callers may mutate it without touching shared state
func (i *Invoice) Clone() *Invoice {
	if i == nil {
		return nil
	}

	c := *i
	if i.DueDate != nil {
		due := *i.DueDate
		c.DueDate = &due
	}
	if i.LineItems != nil {
		c.LineItems = make([]*LineItem, len(i.LineItems))
		for idx, item := range i.LineItems {
			itemCopy := *item
			c.LineItems[idx] = &itemCopy
		}
	}
	return &c
}

func (i *Invoice) IsIssued() bool {
	return i.State == types.InvoiceStateIssued
}

func (i *Invoice) Validate() error {
	if err := i.State.Validate(); err != nil {
		return err
	}

	if i.InvoiceNumber < types.InvoiceNumberMin || i.InvoiceNumber > types.InvoiceNumberMax {
		return ierr.NewError("invoice validation failed").
			WithHint("invoice_number must have 10 digits").
			Mark(ierr.ErrValidation)
	}

	if i.TaxAmount.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("tax_amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	for _, item := range i.LineItems {
		if item.InvoiceNumber != i.InvoiceNumber {
			return ierr.NewError("invoice validation failed").
				WithHint("line items must belong to the invoice").
				Mark(ierr.ErrValidation)
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// DueDateFrom returns the calendar date dueDays after issuedAt, at midnight UTC
func DueDateFrom(issuedAt time.Time, dueDays int) time.Time {
	y, m, d := issuedAt.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dueDays)
}
