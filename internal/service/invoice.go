package service

import (
	"context"
	"time"

	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/tracing"
	"github.com/flexprice/invoicing/internal/types"
)

const (
	spanCreateInvoice  = "createInvoice"
	tagCustomer        = "customer"
	baggageCustomerTax = "taxId"
)

// InvoiceService manages the invoice lifecycle from draft to issued
type InvoiceService interface {
	// CreateInvoice stamps the invoice as a new draft, assigns its number, persists it
	// and returns the number. The passed invoice is updated in place.
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) (int64, error)
	GetInvoice(ctx context.Context, invoiceNumber int64) (*invoice.Invoice, error)
	AddLineItem(ctx context.Context, invoiceNumber int64, item *invoice.LineItem) (*invoice.Invoice, error)
	AddLineItems(ctx context.Context, invoiceNumber int64, items []*invoice.LineItem) (*invoice.Invoice, error)
	// IssueInvoice computes taxes, notifies the customer and moves the invoice to ISSUED.
	// A failed notification leaves Notified false and does not stop issuing.
	IssueInvoice(ctx context.Context, invoiceNumber int64) (*invoice.Invoice, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	if params.Tracer == nil {
		params.Tracer = tracing.NewNoopTracer()
	}
	if params.NumberGenerator == nil {
		params.NumberGenerator = invoice.NewRandomNumberGenerator()
	}
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	if inv == nil {
		return 0, ierr.NewError("invoice is required").
			WithHint("Please provide the invoice to create").
			Mark(ierr.ErrValidation)
	}

	ctx, span := s.Tracer.StartSpan(ctx, spanCreateInvoice)
	defer span.Finish()

	span.Log(spanCreateInvoice)
	span.SetTag(tagCustomer, inv.Customer.Email)
	span.SetBaggageItem(baggageCustomerTax, inv.Customer.TaxID)
	ctx = span.Context()

	now := time.Now().UTC()
	inv.InvoiceDate = now
	inv.State = types.InvoiceStateDraft
	inv.InvoiceNumber = s.NumberGenerator.Next()
	if inv.CreatedAt.IsZero() {
		inv.BaseModel = types.GetDefaultBaseModel(ctx)
	}
	for _, item := range inv.LineItems {
		item.AttachTo(inv.InvoiceNumber, now)
	}

	if err := s.InvoiceRepo.Persist(ctx, inv); err != nil {
		span.RecordError(err)
		return 0, err
	}

	s.Logger.Infow("created invoice",
		"invoice_number", inv.InvoiceNumber,
		"customer_email", inv.Customer.Email,
		"line_items_count", len(inv.LineItems))

	return inv.InvoiceNumber, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceNumber int64) (*invoice.Invoice, error) {
	return s.InvoiceRepo.Get(ctx, invoiceNumber)
}

func (s *invoiceService) AddLineItem(ctx context.Context, invoiceNumber int64, item *invoice.LineItem) (*invoice.Invoice, error) {
	if item == nil {
		return nil, ierr.NewError("line item is required").
			WithHint("Please provide the line item to add").
			Mark(ierr.ErrValidation)
	}
	return s.AddLineItems(ctx, invoiceNumber, []*invoice.LineItem{item})
}

func (s *invoiceService) AddLineItems(ctx context.Context, invoiceNumber int64, items []*invoice.LineItem) (*invoice.Invoice, error) {
	for _, item := range items {
		if item == nil {
			return nil, ierr.NewError("line item is required").
				WithHint("Line items must not be empty").
				Mark(ierr.ErrValidation)
		}
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, item := range items {
		item.AttachTo(inv.InvoiceNumber, now)
	}
	inv.AddLineItems(items)

	if err := s.InvoiceRepo.Persist(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Debugw("added line items to invoice",
		"invoice_number", invoiceNumber,
		"added", len(items),
		"line_items_count", len(inv.LineItems))

	return inv, nil
}

func (s *invoiceService) IssueInvoice(ctx context.Context, invoiceNumber int64) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	taxed, err := s.TaxCalculator.ComputeTaxes(ctx, inv)
	if err != nil {
		s.Logger.Errorw("failed to compute invoice taxes", "invoice_number", invoiceNumber, "error", err)
		return nil, err
	}

	// the notification carries the issue date and due date
	issuedAt := time.Now().UTC()
	dueDate := invoice.DueDateFrom(issuedAt, s.dueDays())
	taxed.State = types.InvoiceStateIssued
	taxed.InvoiceDate = issuedAt
	taxed.DueDate = &dueDate

	if s.Notifier.NotifyCustomer(ctx, taxed) {
		taxed.Notified = true
	} else {
		s.Logger.Warnw("customer notification failed, issuing anyway", "invoice_number", invoiceNumber)
	}

	if err := s.InvoiceRepo.Persist(ctx, taxed); err != nil {
		return nil, err
	}

	s.Logger.Infow("issued invoice",
		"invoice_number", invoiceNumber,
		"total", taxed.Total.String(),
		"due_date", dueDate,
		"notified", taxed.Notified)

	return taxed, nil
}

func (s *invoiceService) dueDays() int {
	if s.Config == nil || s.Config.Invoice.DueDays <= 0 {
		return types.DefaultInvoiceDueDays
	}
	return s.Config.Invoice.DueDays
}
