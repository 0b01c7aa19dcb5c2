package repository

import (
	"testing"

	"github.com/flexprice/invoicing/internal/cache"
	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/testutil"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/stretchr/testify/suite"
)

type CachedInvoiceRepositorySuite struct {
	suite.Suite
	store *testutil.InMemoryInvoiceStore
	repo  invoice.Repository
}

func TestCachedInvoiceRepository(t *testing.T) {
	suite.Run(t, new(CachedInvoiceRepositorySuite))
}

func (s *CachedInvoiceRepositorySuite) SetupTest() {
	cfg := config.GetDefaultConfig()
	s.store = testutil.NewInMemoryInvoiceStore()
	s.repo = NewCachedInvoiceRepository(s.store, cache.NewInMemoryCache(cfg), logger.NewNoopLogger())
}

func (s *CachedInvoiceRepositorySuite) TestGetServesFromCacheAfterPersist() {
	ctx := testutil.SetupContext()
	inv := &invoice.Invoice{InvoiceNumber: 1234567890, State: types.InvoiceStateDraft}
	s.Require().NoError(s.repo.Persist(ctx, inv))

	got, err := s.repo.Get(ctx, 1234567890)
	s.Require().NoError(err)
	s.Equal(inv.InvoiceNumber, got.InvoiceNumber)
	s.Equal(0, s.store.GetCalls())
}

func (s *CachedInvoiceRepositorySuite) TestGetReadsThrough() {
	ctx := testutil.SetupContext()
	s.Require().NoError(s.store.Persist(ctx, &invoice.Invoice{InvoiceNumber: 1234567890}))

	_, err := s.repo.Get(ctx, 1234567890)
	s.Require().NoError(err)
	_, err = s.repo.Get(ctx, 1234567890)
	s.Require().NoError(err)

	s.Equal(1, s.store.GetCalls())
}

func (s *CachedInvoiceRepositorySuite) TestCachedValueIsNotShared() {
	ctx := testutil.SetupContext()
	s.Require().NoError(s.repo.Persist(ctx, &invoice.Invoice{InvoiceNumber: 1234567890}))

	first, err := s.repo.Get(ctx, 1234567890)
	s.Require().NoError(err)
	first.AddLineItem(&invoice.LineItem{ID: "inv_line_1"})

	second, err := s.repo.Get(ctx, 1234567890)
	s.Require().NoError(err)
	s.Empty(second.LineItems)
}

func (s *CachedInvoiceRepositorySuite) TestPersistFailureEvicts() {
	ctx := testutil.SetupContext()
	s.Require().NoError(s.repo.Persist(ctx, &invoice.Invoice{InvoiceNumber: 1234567890, Currency: "usd"}))

	s.store.FailPersist(ierr.NewError("connection reset").Mark(ierr.ErrDatabase))
	err := s.repo.Persist(ctx, &invoice.Invoice{InvoiceNumber: 1234567890, Currency: "eur"})
	s.True(ierr.IsDatabase(err))
	s.store.FailPersist(nil)

	got, err := s.repo.Get(ctx, 1234567890)
	s.Require().NoError(err)
	s.Equal("usd", got.Currency)
	s.Equal(1, s.store.GetCalls())
}

func (s *CachedInvoiceRepositorySuite) TestNotFoundIsNotCached() {
	ctx := testutil.SetupContext()

	_, err := s.repo.Get(ctx, 1234567890)
	s.True(invoice.IsNotFoundError(err))
	_, err = s.repo.Get(ctx, 1234567890)
	s.True(invoice.IsNotFoundError(err))

	s.Equal(2, s.store.GetCalls())
}
