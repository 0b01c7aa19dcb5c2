package postgres

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf))

	out := buf.String()
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS invoices")
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS invoice_line_items")
}

func TestSchemaKeysInvoicesByTenant(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf))

	out := buf.String()
	assert.Contains(t, out, "PRIMARY KEY (tenant_id, invoice_number)")
	assert.Contains(t, out, "REFERENCES invoices (tenant_id, invoice_number) ON DELETE CASCADE")
	assert.NotContains(t, out, "BIGINT PRIMARY KEY")
}

func TestSchemaMoneyColumnsAreUnconstrained(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf))

	out := buf.String()
	// a precision or scale would round rate times quantity on write
	assert.NotContains(t, out, "NUMERIC(")
	for _, col := range []string{"subtotal", "tax_amount", "total", "rate", "quantity"} {
		assert.Regexp(t, `(?m)^\s*`+col+`\s+NUMERIC NOT NULL`, out)
	}
}
