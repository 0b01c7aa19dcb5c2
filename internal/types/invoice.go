package types

import (
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/samber/lo"
)

// InvoiceState is the lifecycle state of an invoice.
// ISSUED is terminal.
type InvoiceState string

const (
	InvoiceStateDraft  InvoiceState = "DRAFT"
	InvoiceStateIssued InvoiceState = "ISSUED"
)

func (s InvoiceState) String() string {
	return string(s)
}

func (s InvoiceState) Validate() error {
	allowed := []InvoiceState{
		InvoiceStateDraft,
		InvoiceStateIssued,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice state").
			WithHint("Please provide a valid invoice state").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

const (
	// InvoiceNumberMin is the smallest generated invoice number (10 digits)
	InvoiceNumberMin int64 = 1_000_000_000
	// InvoiceNumberMax is the largest generated invoice number (10 digits)
	InvoiceNumberMax int64 = 9_999_999_999

	// DefaultInvoiceDueDays is the number of days between issue and due date
	DefaultInvoiceDueDays = 30
)

// WebhookEventInvoiceIssued is the event name published when an invoice is issued
const WebhookEventInvoiceIssued = "invoice.issued"
