package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Event is a tagged transition trigger for the order state machine. Events
// arrive from three independent sources: a buyer cancel request, the payment
// collaborator's verdict on the bus, and the delivery timer.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// EventConfirmed reports a verified payment.
	EventConfirmed

	// EventCancelled reports a buyer cancellation or a declined payment.
	EventCancelled

	// EventDeliveried reports the delivery timer elapsing for a confirmed
	// order.
	EventDeliveried
)

// getEventStrings returns the wire string for every Event value. The strings
// match the status field of payment.verified messages.
func getEventStrings() map[Event]string {
	return map[Event]string{
		EventConfirmed:  "confirmed",
		EventCancelled:  "cancelled",
		EventDeliveried: "deliveried",
	}
}

// EventFromString maps a bus payload status to a transition event.
// Only "confirmed" and "cancelled" arrive over the bus; "deliveried" is
// raised internally by the delivery scheduler and is accepted here for
// symmetry.
func EventFromString(s string) (Event, error) {
	for event, str := range getEventStrings() {
		if str == s {
			return event, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause(
		"event",
		fmt.Errorf("%q is not a valid transition event", s),
	)
}

// String returns the lowercase wire form of the event.
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "unknown"
}
