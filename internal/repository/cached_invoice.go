package repository

import (
	"context"

	"github.com/flexprice/invoicing/internal/cache"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/types"
)

// cachedInvoiceRepository is a read-through cache in front of another invoice.Repository.
// Values are cloned on the way in and out so cached entries are never shared.
type cachedInvoiceRepository struct {
	next   invoice.Repository
	cache  cache.Cache
	logger *logger.Logger
}

func NewCachedInvoiceRepository(next invoice.Repository, c cache.Cache, logger *logger.Logger) invoice.Repository {
	return &cachedInvoiceRepository{next: next, cache: c, logger: logger}
}

func (r *cachedInvoiceRepository) Persist(ctx context.Context, inv *invoice.Invoice) (err error) {
	key := invoiceCacheKey(ctx, inv.InvoiceNumber)
	span := cache.StartSpan(ctx, cache.OpCachePut, key)
	defer func() { cache.FinishSpan(span, err) }()

	if err = r.next.Persist(ctx, inv); err != nil {
		// the stored row is now unknown
		r.cache.Delete(ctx, key)
		return err
	}

	r.cache.Set(ctx, key, inv.Clone(), 0)
	return nil
}

func (r *cachedInvoiceRepository) Get(ctx context.Context, invoiceNumber int64) (_ *invoice.Invoice, err error) {
	key := invoiceCacheKey(ctx, invoiceNumber)
	span := cache.StartSpan(ctx, cache.OpCacheGet, key)
	defer func() { cache.FinishSpan(span, err) }()

	if cached, found := r.cache.Get(ctx, key); found {
		if inv, ok := cached.(*invoice.Invoice); ok {
			r.logger.Debugw("invoice cache hit", "invoice_number", invoiceNumber)
			cache.SetHit(span, true)
			return inv.Clone(), nil
		}
	}
	cache.SetHit(span, false)

	inv, err := r.next.Get(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, key, inv.Clone(), 0)
	return inv, nil
}

func invoiceCacheKey(ctx context.Context, invoiceNumber int64) string {
	return cache.GenerateKey(cache.PrefixInvoice, types.GetTenantID(ctx), invoiceNumber)
}
