package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]

	mu           sync.Mutex
	persistErr   error
	persistCalls int
	getCalls     int
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func invoiceKey(tenantID string, invoiceNumber int64) string {
	return fmt.Sprintf("%s:%d", tenantID, invoiceNumber)
}

// Persist stores a copy of the invoice, overwriting any invoice with the same number
func (s *InMemoryInvoiceStore) Persist(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	s.persistCalls++
	err := s.persistErr
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}

	if inv.TenantID == "" {
		inv.TenantID = types.GetTenantID(ctx)
	}
	s.Upsert(ctx, invoiceKey(inv.TenantID, inv.InvoiceNumber), inv.Clone())
	return nil
}

// Get returns a copy of the stored invoice
func (s *InMemoryInvoiceStore) Get(ctx context.Context, invoiceNumber int64) (*invoice.Invoice, error) {
	s.mu.Lock()
	s.getCalls++
	s.mu.Unlock()

	inv, err := s.InMemoryStore.Get(ctx, invoiceKey(types.GetTenantID(ctx), invoiceNumber))
	if err != nil {
		return nil, invoice.NewNotFoundError(invoiceNumber)
	}
	return inv.Clone(), nil
}

// FailPersist makes every following Persist return err; nil restores normal behavior
func (s *InMemoryInvoiceStore) FailPersist(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistErr = err
}

// PersistCalls returns how many times Persist was called
func (s *InMemoryInvoiceStore) PersistCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistCalls
}

// GetCalls returns how many times Get was called
func (s *InMemoryInvoiceStore) GetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

// Clear removes all invoices and resets failure injection
func (s *InMemoryInvoiceStore) Clear() {
	s.InMemoryStore.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistErr = nil
	s.persistCalls = 0
	s.getCalls = 0
}
