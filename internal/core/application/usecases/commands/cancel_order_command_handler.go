package commands

import (
	"context"
)

// CancelOrderCommandHandler handles buyer-initiated order cancellation.
// The lifecycle core decides whether the cancel is still possible; a cancel
// racing payment confirmation or delivery yields a conflict there, not here.
type CancelOrderCommandHandler struct {
	lifecycle OrderLifecycle
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(lifecycle OrderLifecycle) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		lifecycle: lifecycle,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.lifecycle.RequestCancel(ctx, cmd.OrderID())
}
