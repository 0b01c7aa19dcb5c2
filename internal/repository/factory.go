package repository

import (
	"github.com/flexprice/invoicing/internal/cache"
	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/postgres"
	postgresRepo "github.com/flexprice/invoicing/internal/repository/postgres"
)

// NewInvoiceRepository returns the postgres repository, behind the cache when it is enabled
func NewInvoiceRepository(client postgres.IClient, c cache.Cache, cfg *config.Configuration, logger *logger.Logger) invoice.Repository {
	repo := postgresRepo.NewInvoiceRepository(client, logger)
	if !cfg.Cache.Enabled {
		return repo
	}
	return NewCachedInvoiceRepository(repo, c, logger)
}
