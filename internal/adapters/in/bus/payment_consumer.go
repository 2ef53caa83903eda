// Package bus is the inbound messaging adapter. It decodes bus payloads
// and feeds them to the lifecycle core.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/lifecycle"
	"orderflow/internal/core/ports"
)

// paymentHandler is the slice of the orchestrator the consumer needs.
type paymentHandler interface {
	HandlePaymentVerified(ctx context.Context, msg lifecycle.StatusMessage) error
}

// PaymentConsumer subscribes to the payment verdict topic and applies each
// verdict through the lifecycle core.
type PaymentConsumer struct {
	bus     ports.EventBus
	handler paymentHandler
	topic   string
	logger  *slog.Logger
}

// NewPaymentConsumer creates a consumer for the given payment.verified
// topic.
func NewPaymentConsumer(
	eventBus ports.EventBus,
	handler paymentHandler,
	topic string,
	logger *slog.Logger,
) *PaymentConsumer {
	return &PaymentConsumer{
		bus:     eventBus,
		handler: handler,
		topic:   topic,
		logger:  logger.With("component", "payment_consumer"),
	}
}

// Start subscribes to the topic. The consumer runs until ctx is cancelled.
func (c *PaymentConsumer) Start(ctx context.Context) error {
	return c.bus.Subscribe(ctx, c.topic, c.handle)
}

// handle decodes one payment verdict. A payload that is not valid JSON is
// dropped with a log line; redelivering it can never succeed.
func (c *PaymentConsumer) handle(ctx context.Context, payload []byte) error {
	var msg lifecycle.StatusMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.logger.Error("undecodable payment verdict dropped",
			"topic", c.topic, "error", err)
		return nil
	}

	if err := c.handler.HandlePaymentVerified(ctx, msg); err != nil {
		return fmt.Errorf("handling payment verdict: %w", err)
	}

	return nil
}
