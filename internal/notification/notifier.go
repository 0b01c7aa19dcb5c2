package notification

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/domain/invoice"
	"github.com/flexprice/invoicing/internal/logger"
	"github.com/flexprice/invoicing/internal/pubsub"
	"github.com/flexprice/invoicing/internal/types"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Notifier tells a customer about their invoice. It reports success and never fails the caller.
// The invoice is passed already ISSUED, with its issue date and due date set.
type Notifier interface {
	NotifyCustomer(ctx context.Context, inv *invoice.Invoice) bool
}

// InvoiceIssuedPayload is the message body published when an invoice is issued
type InvoiceIssuedPayload struct {
	ID            string          `json:"id"`
	EventName     string          `json:"event_name"`
	TenantID      string          `json:"tenant_id"`
	InvoiceNumber int64           `json:"invoice_number"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerEmail string          `json:"customer_email"`
	Currency      string          `json:"currency,omitempty"`
	Total         decimal.Decimal `json:"total"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

type pubsubNotifier struct {
	pubSub pubsub.Publisher
	topic  string
	logger *logger.Logger
}

// NewNotifier publishes customer notifications to the configured topic
func NewNotifier(pubSub pubsub.Publisher, cfg *config.Configuration, logger *logger.Logger) Notifier {
	return &pubsubNotifier{
		pubSub: pubSub,
		topic:  cfg.Notification.Topic,
		logger: logger,
	}
}

func (n *pubsubNotifier) NotifyCustomer(ctx context.Context, inv *invoice.Invoice) bool {
	if inv == nil || inv.Customer.Email == "" {
		n.logger.Warnw("skipping customer notification, no recipient")
		return false
	}

	event := &InvoiceIssuedPayload{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION),
		EventName:     types.WebhookEventInvoiceIssued,
		TenantID:      types.GetTenantID(ctx),
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.Customer.Name,
		CustomerEmail: inv.Customer.Email,
		Currency:      inv.Currency,
		Total:         inv.Total,
		DueDate:       inv.DueDate,
		Timestamp:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Errorw("failed to encode customer notification",
			"error", err,
			"invoice_number", inv.InvoiceNumber,
		)
		return false
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("tenant_id", event.TenantID)
	msg.Metadata.Set("event_name", event.EventName)
	if requestID := types.GetRequestID(ctx); requestID != "" {
		msg.Metadata.Set("request_id", requestID)
	}

	if err := n.pubSub.Publish(ctx, n.topic, msg); err != nil {
		n.logger.Errorw("failed to publish customer notification",
			"error", err,
			"event_id", event.ID,
			"invoice_number", inv.InvoiceNumber,
			"topic", n.topic,
		)
		return false
	}

	n.logger.Infow("customer notified",
		"event_id", event.ID,
		"invoice_number", inv.InvoiceNumber,
		"topic", n.topic,
	)
	return true
}

// DecodeInvoiceIssued reads a payload published by the notifier
func DecodeInvoiceIssued(msg *message.Message) (*InvoiceIssuedPayload, error) {
	var payload InvoiceIssuedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
