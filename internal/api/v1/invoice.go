package v1

import (
	"net/http"
	"strconv"

	"github.com/flexprice/invoicing/internal/api/dto"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice godoc
// @Summary Create a new invoice
// @Description Create a draft invoice. The invoice number is generated.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("Invalid request format").Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	inv := req.ToInvoice(c.Request.Context())
	if _, err := h.invoiceService.CreateInvoice(c.Request.Context(), inv); err != nil {
		h.logger.Errorw("failed to create invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewInvoiceResponse(inv))
}

// GetInvoice godoc
// @Summary Get an invoice by number
// @Tags Invoices
// @Produce json
// @Param number path int true "Invoice number"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{number} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	number, err := invoiceNumberParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), number)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvoiceResponse(inv))
}

// AddLineItems godoc
// @Summary Add line items to an invoice
// @Description Totals are computed as rate times quantity
// @Tags Invoices
// @Accept json
// @Produce json
// @Param number path int true "Invoice number"
// @Param request body dto.AddLineItemsRequest true "Line items"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{number}/line-items [post]
func (h *InvoiceHandler) AddLineItems(c *gin.Context) {
	number, err := invoiceNumberParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.AddLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("Invalid request format").Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	items := req.ToLineItems()

	var updated *invoice.Invoice
	if len(items) == 1 {
		updated, err = h.invoiceService.AddLineItem(c.Request.Context(), number, items[0])
	} else {
		updated, err = h.invoiceService.AddLineItems(c.Request.Context(), number, items)
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvoiceResponse(updated))
}

// IssueInvoice godoc
// @Summary Issue an invoice
// @Description Computes taxes, notifies the customer and sets the due date
// @Tags Invoices
// @Produce json
// @Param number path int true "Invoice number"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{number}/issue [post]
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	number, err := invoiceNumberParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	inv, err := h.invoiceService.IssueInvoice(c.Request.Context(), number)
	if err != nil {
		h.logger.Errorw("failed to issue invoice", "invoice_number", number, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvoiceResponse(inv))
}

func invoiceNumberParam(c *gin.Context) (int64, error) {
	raw := c.Param("number")
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || number <= 0 {
		return 0, ierr.NewError("invalid invoice number").
			WithHint("Invoice number must be a positive integer").
			WithReportableDetails(map[string]any{"invoice_number": raw}).
			Mark(ierr.ErrValidation)
	}
	return number, nil
}
