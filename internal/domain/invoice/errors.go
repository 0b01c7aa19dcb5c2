package invoice

import (
	ierr "github.com/flexprice/invoicing/internal/errors"
)

// NewNotFoundError builds the error returned when no invoice carries the given number
func NewNotFoundError(invoiceNumber int64) error {
	return ierr.NewErrorf("invoice %d not found", invoiceNumber).
		WithHintf("Invoice %d does not exist", invoiceNumber).
		WithReportableDetails(map[string]any{
			"invoice_number": invoiceNumber,
		}).
		Mark(ierr.ErrNotFound)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return ierr.IsNotFound(err)
}
