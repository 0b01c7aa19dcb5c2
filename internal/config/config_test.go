package config

import (
	"testing"

	"github.com/flexprice/invoicing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, types.DefaultInvoiceDueDays, cfg.Invoice.DueDays)
	assert.Equal(t, types.MemoryPubSub, cfg.Notification.PubSub)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Configuration)
	}{
		{"zero due days", func(c *Configuration) { c.Invoice.DueDays = 0 }},
		{"tax above 100", func(c *Configuration) { c.Tax.Percentage = 120 }},
		{"unknown pubsub", func(c *Configuration) { c.Notification.PubSub = "redis" }},
		{"unknown log level", func(c *Configuration) { c.Logging.Level = "verbose" }},
		{"unknown mode", func(c *Configuration) { c.Deployment.Mode = "lambda" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewConfigReadsEnvironment(t *testing.T) {
	t.Setenv("INVOICING_INVOICE_DUE_DAYS", "45")
	t.Setenv("INVOICING_TAX_PERCENTAGE", "7.5")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Invoice.DueDays)
	assert.Equal(t, 7.5, cfg.Tax.Percentage)
}

func TestGetDSN(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Equal(t,
		"user=invoicing password=invoicing dbname=invoicing host=localhost port=5432 sslmode=disable",
		cfg.Postgres.GetDSN())
}
