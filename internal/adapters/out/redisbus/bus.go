// Package redisbus implements the event bus port on Redis pub/sub.
//
// Redis pub/sub gives at-least-once semantics to connected consumers only;
// messages published while a consumer is down are lost. The lifecycle core
// tolerates that: startup rehydration recovers actor state from the
// database, and the watchdog job surfaces orders stuck waiting for a
// verdict that never arrived.
package redisbus

import (
	"context"
	"log/slog"

	"orderflow/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Bus is the go-redis backed implementation of ports.EventBus.
type Bus struct {
	client *redis.Client
	logger *slog.Logger
}

// NewBus creates an event bus over an existing Redis client.
func NewBus(client *redis.Client, logger *slog.Logger) *Bus {
	return &Bus{
		client: client,
		logger: logger.With("component", "redis_bus"),
	}
}

// Publish sends payload on the named topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.client.Publish(ctx, topic, payload).Err()
}

// Subscribe registers handler for the named topic and starts a consumer
// goroutine that runs until ctx is cancelled. Handler errors are logged
// and never stop the loop.
func (b *Bus) Subscribe(ctx context.Context, topic string, handler ports.MessageHandler) error {
	pubsub := b.client.Subscribe(ctx, topic)

	// Receive forces the SUBSCRIBE round trip so a broken connection
	// surfaces here instead of as a silent dead consumer.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}

	go b.consume(ctx, topic, pubsub, handler)

	b.logger.Info("subscribed", "topic", topic)
	return nil
}

func (b *Bus) consume(
	ctx context.Context,
	topic string,
	pubsub *redis.PubSub,
	handler ports.MessageHandler,
) {
	defer func() {
		_ = pubsub.Close()
	}()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("consumer stopped", "topic", topic)
			return
		case msg, ok := <-messages:
			if !ok {
				b.logger.Warn("subscription channel closed", "topic", topic)
				return
			}

			if err := handler(ctx, []byte(msg.Payload)); err != nil {
				b.logger.Error("message handling failed",
					"topic", topic, "error", err)
			}
		}
	}
}
