package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// Builds the order aggregate in "created" status and hands it to the
// lifecycle core, which persists it and kicks off payment verification.
type CreateOrderCommandHandler struct {
	lifecycle OrderLifecycle
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(lifecycle OrderLifecycle) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		lifecycle: lifecycle,
	}
}

// Handle processes the order placement command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.UserID(), cmd.Items())
	if err != nil {
		return err
	}

	return h.lifecycle.CreateOrder(ctx, aggregate)
}
