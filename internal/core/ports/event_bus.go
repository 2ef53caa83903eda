package ports

import "context"

// MessageHandler processes one message delivered on a subscribed topic.
// A returned error is logged by the bus adapter; it never stops the
// subscription loop.
type MessageHandler func(ctx context.Context, payload []byte) error

// EventBus is the publish/subscribe port toward the message broker.
//
// Delivery is at-least-once: the same logical message may reach a handler
// more than once, so handlers must be idempotent against duplicates.
type EventBus interface {
	// Publish sends payload on the named topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Subscribe registers handler for the named topic and starts a consumer
	// loop that runs until ctx is cancelled. Handler failures are logged and
	// the loop continues with the next message.
	Subscribe(ctx context.Context, topic string, handler MessageHandler) error
}
