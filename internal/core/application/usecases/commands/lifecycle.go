// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation, then
// delegation to the order lifecycle core, which owns transitions,
// persistence, and messaging.
package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderLifecycle is the write-side entry point command handlers delegate
// to. It is implemented by the lifecycle orchestrator.
type OrderLifecycle interface {
	// CreateOrder persists a new order, starts its live state machine, and
	// announces it to the payment collaborator.
	CreateOrder(ctx context.Context, aggregate *order.Order) error

	// RequestCancel applies a buyer-initiated cancel. Exactly one of
	// several concurrent cancels for the same order succeeds.
	RequestCancel(ctx context.Context, id kernel.UUID) error
}
