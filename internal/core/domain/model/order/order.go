package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrItemsAreRequired is returned when an order is created without lines.
	ErrItemsAreRequired = errors.New("order requires at least one item")
)

// Order is the aggregate root for one buyer order. It owns the order's
// identity, its lines, and the lifecycle status; the status may only change
// through ApplyEvent, which enforces the state machine.
//
// Invariant: once the status is terminal (cancelled or deliveried) it never
// changes again.
type Order struct {
	id        kernel.UUID
	userID    string
	items     []Item
	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates an order in the created status for the given buyer and
// lines. All inputs are validated; the creation timestamp is taken in UTC.
func NewOrder(id kernel.UUID, userID string, items []Item) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Unlike NewOrder it
// accepts any valid status and the original creation time.
func RestoreOrder(id kernel.UUID, userID string, items []Item, status Status, createdAt time.Time) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built through a constructor. Call it when
// reconstructing orders from external data.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the buyer's identifier.
func (o *Order) UserID() string {
	return o.userID
}

// Items returns the order lines.
func (o *Order) Items() []Item {
	return o.items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the UTC creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ApplyEvent fires a transition event against the order. On a legal edge the
// status advances and the new status is returned. On an illegal edge the
// order is left untouched and ErrInvalidTransition is returned.
func (o *Order) ApplyEvent(event Event) (Status, error) {
	next, err := o.status.Apply(event)
	if err != nil {
		return o.status, err
	}

	o.status = next
	return next, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	o.items = items
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
