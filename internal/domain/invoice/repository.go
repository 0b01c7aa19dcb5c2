package invoice

import (
	"context"
)

// Repository is the storage collaborator of the invoice lifecycle.
// Persist writes the whole invoice including its line items; Get returns a
// not found error (see IsNotFoundError) when the number is unknown.
type Repository interface {
	Persist(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, invoiceNumber int64) (*Invoice, error)
}
