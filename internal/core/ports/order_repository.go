package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must return errs.ObjectNotFoundError (unwrapping to
// errs.ErrObjectNotFound) when an order id matches no row.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate, items included, by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStatus reads only the persisted status of an order. Used by the
	// delivery timer to re-validate before acting.
	GetStatus(ctx context.Context, id kernel.UUID) (order.Status, error)

	// UpdateStatus writes a new status for an existing order. It does not
	// enforce transition legality; that is the lifecycle core's job.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error

	// GetAllActive retrieves every order whose status is non-terminal.
	// Used to rebuild the actor registry at process start.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
