package postgres

import (
	"context"
	"fmt"
	"io"
)

// schemaStatements creates the invoicing tables. Every statement is idempotent.
// Money columns are unconstrained NUMERIC so stored totals keep the exact
// scale of rate times quantity.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS invoices (
	invoice_number  BIGINT NOT NULL,
	tenant_id       VARCHAR(50) NOT NULL,
	customer_name   VARCHAR(255) NOT NULL DEFAULT '',
	customer_email  VARCHAR(255) NOT NULL,
	customer_tax_id VARCHAR(100) NOT NULL DEFAULT '',
	state           VARCHAR(20) NOT NULL,
	notified        BOOLEAN NOT NULL DEFAULT FALSE,
	currency        VARCHAR(10) NOT NULL DEFAULT '',
	subtotal        NUMERIC NOT NULL DEFAULT 0,
	tax_amount      NUMERIC NOT NULL DEFAULT 0,
	total           NUMERIC NOT NULL DEFAULT 0,
	invoice_date    TIMESTAMPTZ NOT NULL,
	due_date        TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL,
	created_by      VARCHAR(50) NOT NULL DEFAULT '',
	updated_by      VARCHAR(50) NOT NULL DEFAULT '',
	PRIMARY KEY (tenant_id, invoice_number)
)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_tenant_state ON invoices (tenant_id, state)`,
	`CREATE TABLE IF NOT EXISTS invoice_line_items (
	id             VARCHAR(50) PRIMARY KEY,
	invoice_number BIGINT NOT NULL,
	tenant_id      VARCHAR(50) NOT NULL,
	position       INTEGER NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	rate           NUMERIC NOT NULL,
	quantity       NUMERIC NOT NULL,
	total          NUMERIC NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	FOREIGN KEY (tenant_id, invoice_number) REFERENCES invoices (tenant_id, invoice_number) ON DELETE CASCADE
)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_line_items_invoice ON invoice_line_items (tenant_id, invoice_number, position)`,
}

// WriteSchema prints the schema statements without executing them
func WriteSchema(w io.Writer) error {
	for _, stmt := range schemaStatements {
		if _, err := fmt.Fprintf(w, "%s;\n\n", stmt); err != nil {
			return err
		}
	}
	return nil
}

// Migrate creates the schema in a single transaction
func (db *DB) Migrate(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		q := db.GetQuerier(ctx)
		for _, stmt := range schemaStatements {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}
