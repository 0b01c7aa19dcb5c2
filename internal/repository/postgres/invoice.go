package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/flexprice/invoicing/internal/domain/invoice"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/postgres"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/shopspring/decimal"
)

type invoiceRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(client postgres.IClient, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{client: client, logger: logger}
}

// invoiceRow is the flat shape of a row of the invoices table
type invoiceRow struct {
	InvoiceNumber int64           `db:"invoice_number"`
	CustomerName  string          `db:"customer_name"`
	CustomerEmail string          `db:"customer_email"`
	CustomerTaxID string          `db:"customer_tax_id"`
	State         string          `db:"state"`
	Notified      bool            `db:"notified"`
	Currency      string          `db:"currency"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	Total         decimal.Decimal `db:"total"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	DueDate       sql.NullTime    `db:"due_date"`
	TenantID      string          `db:"tenant_id"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	CreatedBy     string          `db:"created_by"`
	UpdatedBy     string          `db:"updated_by"`
}

type lineItemRow struct {
	ID            string          `db:"id"`
	InvoiceNumber int64           `db:"invoice_number"`
	Position      int             `db:"position"`
	Description   string          `db:"description"`
	Rate          decimal.Decimal `db:"rate"`
	Quantity      decimal.Decimal `db:"quantity"`
	Total         decimal.Decimal `db:"total"`
	TenantID      string          `db:"tenant_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Persist inserts the invoice or overwrites the tenant's stored one with the same number.
// Line items are replaced as a whole so the stored order always matches the model.
func (r *invoiceRepository) Persist(ctx context.Context, inv *invoice.Invoice) error {
	if inv.TenantID == "" {
		inv.TenantID = types.GetTenantID(ctx)
	}
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
		inv.CreatedBy = types.GetUserID(ctx)
	}
	inv.UpdatedAt = now
	inv.UpdatedBy = types.GetUserID(ctx)

	r.logger.Debugw("persisting invoice",
		"invoice_number", inv.InvoiceNumber,
		"state", inv.State,
		"line_items_count", len(inv.LineItems))

	err := r.client.WithTx(ctx, func(ctx context.Context) error {
		q := r.client.GetQuerier(ctx)

		query := `
		INSERT INTO invoices (
			invoice_number, customer_name, customer_email, customer_tax_id, state, notified,
			currency, subtotal, tax_amount, total, invoice_date, due_date,
			tenant_id, created_at, updated_at, created_by, updated_by
		) VALUES (
			:invoice_number, :customer_name, :customer_email, :customer_tax_id, :state, :notified,
			:currency, :subtotal, :tax_amount, :total, :invoice_date, :due_date,
			:tenant_id, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (tenant_id, invoice_number) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			customer_email = EXCLUDED.customer_email,
			customer_tax_id = EXCLUDED.customer_tax_id,
			state = EXCLUDED.state,
			notified = EXCLUDED.notified,
			currency = EXCLUDED.currency,
			subtotal = EXCLUDED.subtotal,
			tax_amount = EXCLUDED.tax_amount,
			total = EXCLUDED.total,
			invoice_date = EXCLUDED.invoice_date,
			due_date = EXCLUDED.due_date,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
		`
		if _, err := q.NamedExecContext(ctx, query, toInvoiceRow(inv)); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to store invoice").
				WithReportableDetails(map[string]any{"invoice_number": inv.InvoiceNumber}).
				Mark(ierr.ErrDatabase)
		}

		if _, err := q.ExecContext(ctx,
			`DELETE FROM invoice_line_items WHERE invoice_number = $1 AND tenant_id = $2`,
			inv.InvoiceNumber, inv.TenantID,
		); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to store invoice line items").
				Mark(ierr.ErrDatabase)
		}

		rows := toLineItemRows(inv)
		if len(rows) == 0 {
			return nil
		}

		itemsQuery := `
		INSERT INTO invoice_line_items (
			id, invoice_number, position, description, rate, quantity, total, tenant_id, created_at
		) VALUES (
			:id, :invoice_number, :position, :description, :rate, :quantity, :total, :tenant_id, :created_at
		)
		`
		if _, err := q.NamedExecContext(ctx, itemsQuery, rows); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to store invoice line items").
				WithReportableDetails(map[string]any{
					"invoice_number":   inv.InvoiceNumber,
					"line_items_count": len(rows),
				}).
				Mark(ierr.ErrDatabase)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to persist invoice", "invoice_number", inv.InvoiceNumber, "error", err)
		return err
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, invoiceNumber int64) (*invoice.Invoice, error) {
	tenantID := types.GetTenantID(ctx)
	q := r.client.GetQuerier(ctx)

	var row invoiceRow
	err := q.GetContext(ctx, &row, `
	SELECT
		invoice_number, customer_name, customer_email, customer_tax_id, state, notified,
		currency, subtotal, tax_amount, total, invoice_date, due_date,
		tenant_id, created_at, updated_at, created_by, updated_by
	FROM invoices
	WHERE invoice_number = $1 AND tenant_id = $2
	`, invoiceNumber, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.NewNotFoundError(invoiceNumber)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch invoice").
			WithReportableDetails(map[string]any{"invoice_number": invoiceNumber}).
			Mark(ierr.ErrDatabase)
	}

	var items []lineItemRow
	err = q.SelectContext(ctx, &items, `
	SELECT id, invoice_number, position, description, rate, quantity, total, tenant_id, created_at
	FROM invoice_line_items
	WHERE invoice_number = $1 AND tenant_id = $2
	ORDER BY position ASC
	`, invoiceNumber, tenantID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch invoice line items").
			WithReportableDetails(map[string]any{"invoice_number": invoiceNumber}).
			Mark(ierr.ErrDatabase)
	}

	return fromRows(row, items), nil
}

func toInvoiceRow(inv *invoice.Invoice) invoiceRow {
	row := invoiceRow{
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.Customer.Name,
		CustomerEmail: inv.Customer.Email,
		CustomerTaxID: inv.Customer.TaxID,
		State:         string(inv.State),
		Notified:      inv.Notified,
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		InvoiceDate:   inv.InvoiceDate,
		TenantID:      inv.TenantID,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		CreatedBy:     inv.CreatedBy,
		UpdatedBy:     inv.UpdatedBy,
	}
	if inv.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *inv.DueDate, Valid: true}
	}
	return row
}

func toLineItemRows(inv *invoice.Invoice) []lineItemRow {
	rows := make([]lineItemRow, 0, len(inv.LineItems))
	for i, item := range inv.LineItems {
		rows = append(rows, lineItemRow{
			ID:            item.ID,
			InvoiceNumber: inv.InvoiceNumber,
			Position:      i,
			Description:   item.Description,
			Rate:          item.Rate,
			Quantity:      item.Quantity,
			Total:         item.Total,
			TenantID:      inv.TenantID,
			CreatedAt:     item.CreatedAt,
		})
	}
	return rows
}

func fromRows(row invoiceRow, items []lineItemRow) *invoice.Invoice {
	inv := &invoice.Invoice{
		InvoiceNumber: row.InvoiceNumber,
		Customer: invoice.Customer{
			Name:  row.CustomerName,
			Email: row.CustomerEmail,
			TaxID: row.CustomerTaxID,
		},
		State:       types.InvoiceState(row.State),
		Notified:    row.Notified,
		Currency:    row.Currency,
		Subtotal:    row.Subtotal,
		TaxAmount:   row.TaxAmount,
		Total:       row.Total,
		InvoiceDate: row.InvoiceDate,
		LineItems:   make([]*invoice.LineItem, 0, len(items)),
		BaseModel: types.BaseModel{
			TenantID:  row.TenantID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			CreatedBy: row.CreatedBy,
			UpdatedBy: row.UpdatedBy,
		},
	}
	if row.DueDate.Valid {
		due := row.DueDate.Time
		inv.DueDate = &due
	}

	for _, item := range items {
		inv.LineItems = append(inv.LineItems, &invoice.LineItem{
			ID:            item.ID,
			InvoiceNumber: item.InvoiceNumber,
			Description:   item.Description,
			Rate:          item.Rate,
			Quantity:      item.Quantity,
			Total:         item.Total,
			CreatedAt:     item.CreatedAt,
		})
	}
	return inv
}
