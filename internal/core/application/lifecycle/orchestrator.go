package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrOrderAlreadyFinalized is returned to callers whose request lost the
// race: the order reached a terminal status before their event could apply.
var ErrOrderAlreadyFinalized = errors.New("order already finalized")

// Orchestrator wires the actor registry, the delivery scheduler, and the
// outbound ports into the order lifecycle described in the package docs.
// It is the only component that mutates persisted order status.
//
// All three inbound paths (HTTP cancel, bus payment verdict, timer fire)
// funnel through Actor.Transition, so the per-order critical section covers
// applying the in-memory transition, persisting the new status, and, for
// terminal statuses, tearing down the actor and its timer. Broadcasting to
// listeners happens after the critical section and never fails a transition.
type Orchestrator struct {
	registry   *Registry
	scheduler  *DeliveryScheduler
	uowFactory ports.UnitOfWorkFactory
	orders     ports.OrderRepository
	bus        ports.EventBus
	notifier   ports.Notifier
	logger     *slog.Logger

	orderCreatedTopic string
	deliveryDelay     time.Duration
}

// NewOrchestrator assembles the lifecycle orchestrator. The delivery delay
// is how long a confirmed order waits before it is considered deliveried;
// orderCreatedTopic is where newly created orders are announced to the
// payment collaborator.
func NewOrchestrator(
	registry *Registry,
	scheduler *DeliveryScheduler,
	uowFactory ports.UnitOfWorkFactory,
	orders ports.OrderRepository,
	bus ports.EventBus,
	notifier ports.Notifier,
	logger *slog.Logger,
	orderCreatedTopic string,
	deliveryDelay time.Duration,
) *Orchestrator {
	return &Orchestrator{
		registry:          registry,
		scheduler:         scheduler,
		uowFactory:        uowFactory,
		orders:            orders,
		bus:               bus,
		notifier:          notifier,
		logger:            logger.With("component", "lifecycle_orchestrator"),
		orderCreatedTopic: orderCreatedTopic,
		deliveryDelay:     deliveryDelay,
	}
}

// CreateOrder persists a new order with its items in one transaction,
// registers a live actor for it, and announces it on the order.created
// topic. No transition is applied; the order starts and stays in created
// until the payment verdict or a cancel arrives.
//
// A publish failure is logged and does not fail the creation: the order is
// durable and the watchdog surfaces orders that never receive a verdict.
func (o *Orchestrator) CreateOrder(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	o.registry.GetOrCreate(aggregate.ID(), aggregate.Status())

	o.publishCreated(ctx, aggregate)

	o.logger.Info("order created",
		"orderId", aggregate.ID().String(),
		"userId", aggregate.UserID(),
	)
	return nil
}

// RequestCancel applies a buyer-initiated cancel to the order's actor.
//
// Returns an error unwrapping to errs.ErrObjectNotFound when no live actor
// exists (order unknown or already finalized), and one unwrapping to
// ErrOrderAlreadyFinalized when the cancel lost the race against another
// terminal transition. Exactly one of two concurrent cancels succeeds.
func (o *Orchestrator) RequestCancel(ctx context.Context, id kernel.UUID) error {
	actor, ok := o.registry.Get(id)
	if !ok {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	next, err := actor.Transition(order.EventCancelled, func(next order.Status) error {
		return o.orders.UpdateStatus(ctx, id, next)
	})
	if err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			return fmt.Errorf("%w: %s", ErrOrderAlreadyFinalized, id)
		}
		return err
	}

	o.scheduler.Cancel(id)
	o.registry.Remove(id)
	o.notifier.BroadcastStateChanged()

	o.logger.Info("order cancelled by user", "orderId", id.String(), "status", next.String())
	return nil
}

// HandlePaymentVerified consumes one payment.verified message. It is the
// subscription handler wired to the event bus and is idempotent against
// at-least-once redelivery: a duplicate or stale verdict hits an illegal
// edge and is dropped with a log line, leaving status untouched.
//
// A persistence failure is returned to the bus adapter (which logs it)
// without advancing the actor, so a redelivered message can retry cleanly.
func (o *Orchestrator) HandlePaymentVerified(ctx context.Context, msg StatusMessage) error {
	id, err := kernel.UUIDFromString(msg.ID)
	if err != nil {
		return fmt.Errorf("payment verdict with malformed order id %q: %w", msg.ID, err)
	}

	event, err := order.EventFromString(msg.Status)
	if err != nil {
		return fmt.Errorf("payment verdict with malformed status %q: %w", msg.Status, err)
	}

	actor, ok := o.registry.Get(id)
	if !ok {
		// Unknown or already finalized order. A terminal order must never
		// un-terminate, so dropping is the only safe handling.
		o.logger.Info("payment verdict for order without live actor dropped",
			"orderId", msg.ID, "status", msg.Status)
		return nil
	}

	// A verdict only decides an order still awaiting one. Pinning the source
	// status means a late second verdict cannot cancel a confirmed order the
	// way a buyer cancel legitimately can.
	next, err := actor.TransitionFrom(order.Created, event, func(next order.Status) error {
		return o.orders.UpdateStatus(ctx, id, next)
	})
	if err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			o.logger.Info("duplicate or stale payment verdict dropped",
				"orderId", msg.ID, "status", msg.Status, "reason", err.Error())
			return nil
		}
		return fmt.Errorf("persisting payment verdict for order %s: %w", msg.ID, err)
	}

	switch next {
	case order.Confirmed:
		o.scheduler.Arm(id, o.deliveryDelay, func() {
			o.deliverDue(id)
		})
	case order.Cancelled:
		o.scheduler.Cancel(id)
		o.registry.Remove(id)
	}

	o.notifier.BroadcastStateChanged()

	o.logger.Info("payment verdict applied", "orderId", msg.ID, "status", next.String())
	return nil
}

// Rehydrate recreates live actors for every persisted non-terminal order
// and re-arms delivery timers for the confirmed ones. Called once at
// process start so in-flight orders survive a restart instead of being
// orphaned.
func (o *Orchestrator) Rehydrate(ctx context.Context) error {
	active, err := o.orders.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("loading non-terminal orders: %w", err)
	}

	for _, aggregate := range active {
		id := aggregate.ID()
		o.registry.GetOrCreate(id, aggregate.Status())

		if aggregate.Status() == order.Confirmed {
			o.scheduler.Arm(id, o.deliveryDelay, func() {
				o.deliverDue(id)
			})
		}
	}

	o.logger.Info("actor registry rehydrated", "orders", len(active))
	return nil
}

// deliverDue is the delivery-timer fire path. The persisted status is
// re-read before acting: explicit cancellation already retires timers, but
// the re-check keeps a stale callback harmless even if it slips through.
func (o *Orchestrator) deliverDue(id kernel.UUID) {
	ctx := context.Background()

	status, err := o.orders.GetStatus(ctx, id)
	if err != nil {
		o.logger.Error("delivery timer could not read order status",
			"orderId", id.String(), "error", err)
		return
	}
	if status.IsTerminal() {
		o.registry.Remove(id)
		return
	}

	actor, ok := o.registry.Get(id)
	if !ok {
		return
	}

	next, err := actor.Transition(order.EventDeliveried, func(next order.Status) error {
		return o.orders.UpdateStatus(ctx, id, next)
	})
	if err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			// The order was cancelled between the status read and the
			// transition. The timer fire is a no-op.
			return
		}
		// No caller to report to: the order stays confirmed and is picked
		// up by the watchdog job.
		o.logger.Error("delivery transition failed to persist",
			"orderId", id.String(), "error", err)
		return
	}

	o.registry.Remove(id)
	o.notifier.BroadcastStateChanged()

	o.logger.Info("order delivered", "orderId", id.String(), "status", next.String())
}

// publishCreated announces a new order on the order.created topic.
func (o *Orchestrator) publishCreated(ctx context.Context, aggregate *order.Order) {
	payload, err := json.Marshal(StatusMessage{
		ID:     aggregate.ID().String(),
		Status: aggregate.Status().String(),
	})
	if err != nil {
		o.logger.Error("marshalling order created message failed",
			"orderId", aggregate.ID().String(), "error", err)
		return
	}

	if err := o.bus.Publish(ctx, o.orderCreatedTopic, payload); err != nil {
		o.logger.Error("publishing order created message failed",
			"orderId", aggregate.ID().String(), "error", err)
	}
}
