package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/pubsub/memory"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, *message.Message) error {
	return errors.New("broker unavailable")
}

func (failingPublisher) Close() error { return nil }

func issuedInvoice() *invoice.Invoice {
	due := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	return &invoice.Invoice{
		InvoiceNumber: 1234567890,
		Customer:      invoice.Customer{Name: "Jane", Email: "jane@example.com", TaxID: "DE123"},
		State:         types.InvoiceStateIssued,
		Total:         decimal.RequireFromString("21.48"),
		DueDate:       &due,
	}
}

func TestNotifyCustomerPublishes(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log := logger.NewNoopLogger()
	ps := memory.NewPubSub(log)
	defer ps.Close()

	ctx := types.SetTenantID(context.Background(), "tenant_1")
	messages, err := ps.Subscribe(ctx, cfg.Notification.Topic)
	require.NoError(t, err)

	notifier := NewNotifier(ps, cfg, log)
	assert.True(t, notifier.NotifyCustomer(ctx, issuedInvoice()))

	select {
	case msg := <-messages:
		msg.Ack()
		payload, err := DecodeInvoiceIssued(msg)
		require.NoError(t, err)
		assert.Equal(t, int64(1234567890), payload.InvoiceNumber)
		assert.Equal(t, "jane@example.com", payload.CustomerEmail)
		assert.Equal(t, types.WebhookEventInvoiceIssued, payload.EventName)
		assert.True(t, payload.Total.Equal(decimal.RequireFromString("21.48")))
		require.NotNil(t, payload.DueDate)
		assert.Equal(t, "tenant_1", msg.Metadata.Get("tenant_id"))
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not published")
	}
}

func TestNotifyCustomerPublishFailure(t *testing.T) {
	notifier := NewNotifier(failingPublisher{}, config.GetDefaultConfig(), logger.NewNoopLogger())
	assert.False(t, notifier.NotifyCustomer(context.Background(), issuedInvoice()))
}

func TestNotifyCustomerWithoutEmail(t *testing.T) {
	notifier := NewNotifier(failingPublisher{}, config.GetDefaultConfig(), logger.NewNoopLogger())

	inv := issuedInvoice()
	inv.Customer.Email = ""
	assert.False(t, notifier.NotifyCustomer(context.Background(), inv))
	assert.False(t, notifier.NotifyCustomer(context.Background(), nil))
}
