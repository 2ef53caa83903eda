package lifecycle

import (
	"fmt"
	"sync"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Actor is the live state-machine instance for one in-flight order. All
// transitions for the order, whatever their trigger, are serialized through
// the actor's mutex.
//
// An actor closes permanently when it reaches a terminal status; a closed
// actor rejects every further event the same way a terminal status does.
type Actor struct {
	mu      sync.Mutex
	orderID kernel.UUID
	state   order.Status
	closed  bool
}

func newActor(orderID kernel.UUID, state order.Status) *Actor {
	return &Actor{
		orderID: orderID,
		state:   state,
	}
}

// OrderID returns the order this actor belongs to.
func (a *Actor) OrderID() kernel.UUID {
	return a.orderID
}

// State returns the actor's current in-memory status.
func (a *Actor) State() order.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Closed reports whether the actor reached a terminal status.
func (a *Actor) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Transition fires event against the actor under its mutex.
//
// On a legal edge the commit callback runs while the lock is still held,
// typically persisting the new status. Only after commit succeeds does the
// in-memory state advance, so a failed write leaves the actor unchanged and
// the event retryable. Reaching a terminal status closes the actor in the
// same critical section.
//
// An illegal edge, or any event against a closed actor, returns an error
// wrapping order.ErrInvalidTransition and leaves everything untouched.
func (a *Actor) Transition(event order.Event, commit func(next order.Status) error) (order.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transition(event, commit)
}

// TransitionFrom is Transition restricted to a single source status: the
// event only applies while the actor is still in from. Any other current
// status rejects the event with order.ErrInvalidTransition, even when the
// edge itself would be legal. Payment verdicts use this so a late verdict
// cannot cancel an order that has already moved past created.
func (a *Actor) TransitionFrom(from order.Status, event order.Event, commit func(next order.Status) error) (order.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.closed && a.state != from {
		return a.state, fmt.Errorf("%w: event %s expects status %s, order %s is %s",
			order.ErrInvalidTransition, event, from, a.orderID, a.state)
	}

	return a.transition(event, commit)
}

func (a *Actor) transition(event order.Event, commit func(next order.Status) error) (order.Status, error) {
	if a.closed {
		return a.state, fmt.Errorf("%w: actor for order %s is closed", order.ErrInvalidTransition, a.orderID)
	}

	next, err := a.state.Apply(event)
	if err != nil {
		return a.state, err
	}

	if commit != nil {
		if err := commit(next); err != nil {
			return a.state, err
		}
	}

	a.state = next
	if next.IsTerminal() {
		a.closed = true
	}

	return next, nil
}
