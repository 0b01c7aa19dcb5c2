package tax

import (
	"context"

	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/shopspring/decimal"
)

// Calculator computes the taxes of an invoice and returns the taxed invoice
type Calculator interface {
	ComputeTaxes(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error)
}

// amountPrecision is the number of decimal places kept on computed tax amounts
const amountPrecision = 2

type flatRateCalculator struct {
	percentage decimal.Decimal
	logger     *logger.Logger
}

// NewFlatRateCalculator applies the configured percentage to the line item subtotal
func NewFlatRateCalculator(cfg *config.Configuration, logger *logger.Logger) Calculator {
	return &flatRateCalculator{
		percentage: decimal.NewFromFloat(cfg.Tax.Percentage),
		logger:     logger,
	}
}

func (c *flatRateCalculator) ComputeTaxes(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if inv == nil {
		return nil, ierr.NewError("invoice is required").
			WithHint("An invoice is required to compute taxes").
			Mark(ierr.ErrValidation)
	}

	taxed := inv.Clone()
	taxed.Subtotal = taxed.LineItemsTotal()
	taxed.TaxAmount = taxed.Subtotal.Mul(c.percentage).Div(decimal.NewFromInt(100)).Round(amountPrecision)
	taxed.Total = taxed.Subtotal.Add(taxed.TaxAmount)

	c.logger.Debugw("computed invoice taxes",
		"invoice_number", taxed.InvoiceNumber,
		"subtotal", taxed.Subtotal.String(),
		"tax_amount", taxed.TaxAmount.String(),
		"total", taxed.Total.String())

	return taxed, nil
}
