package service

import (
	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/notification"
	"github.com/flexprice/invoicing/internal/tax"
	"github.com/flexprice/invoicing/internal/tracing"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	InvoiceRepo invoice.Repository

	// Collaborators
	TaxCalculator   tax.Calculator
	Notifier        notification.Notifier
	Tracer          tracing.Tracer
	NumberGenerator invoice.NumberGenerator
}

// NewServiceParams creates a new ServiceParams instance
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	invoiceRepo invoice.Repository,
	taxCalculator tax.Calculator,
	notifier notification.Notifier,
	tracer tracing.Tracer,
	numberGenerator invoice.NumberGenerator,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		InvoiceRepo:     invoiceRepo,
		TaxCalculator:   taxCalculator,
		Notifier:        notifier,
		Tracer:          tracer,
		NumberGenerator: numberGenerator,
	}
}
