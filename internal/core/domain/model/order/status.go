package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// ErrInvalidTransition is returned when an event is not defined for the
// current status, including any event sent to a terminal status. Receiving it
// is a normal outcome for stale or duplicate events and must never crash the
// caller.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Created ──confirmed──> Confirmed ──deliveried──> Deliveried
//	   │                       │
//	   └──────cancelled────────┴──cancelled──> Cancelled
//
// Cancelled and Deliveried are terminal states with no outgoing transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status assigned when an order is placed.
	// Orders in this status are waiting for the payment outcome.
	Created

	// Confirmed indicates payment was verified for the order.
	// A confirmed order is scheduled for delivery.
	Confirmed

	// Deliveried indicates the order was delivered. Terminal.
	Deliveried

	// Cancelled indicates the order was cancelled, either by the buyer or by
	// a failed payment. Terminal.
	Cancelled
)

// getStatusStrings returns the wire/database string for every Status value.
// The lowercase forms are shared with the payment collaborator and the UI.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		Confirmed:  "confirmed",
		Deliveried: "deliveried",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, to support
// validation and restore-from-persistence.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "created",
		Confirmed:  "confirmed",
		Deliveried: "deliveried",
		Cancelled:  "cancelled",
	}
}

// getTransitions returns the transition table: for each non-terminal status,
// the events it accepts and the status each event leads to. Statuses absent
// from the table are terminal.
func getTransitions() map[Status]map[Event]Status {
	return map[Status]map[Event]Status{
		Created: {
			EventConfirmed: Confirmed,
			EventCancelled: Cancelled,
		},
		Confirmed: {
			EventDeliveried: Deliveried,
			EventCancelled:  Cancelled,
		},
	}
}

// StatusFromString restores a Status from its wire/database string.
// Returns an error for unknown strings.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the lowercase wire form of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Deliveried || s == Cancelled
}

// Apply returns the status reached by firing event from the current status.
//
// Valid edges:
//   - Created -> Confirmed (confirmed)
//   - Created -> Cancelled (cancelled)
//   - Confirmed -> Deliveried (deliveried)
//   - Confirmed -> Cancelled (cancelled)
//
// Any other pairing, including any event against a terminal status, returns
// ErrInvalidTransition. The error wraps enough context to log which edge was
// rejected.
func (s Status) Apply(event Event) (Status, error) {
	edges, ok := getTransitions()[s]
	if !ok {
		return Unknown, fmt.Errorf("%w: %s is terminal, %s ignored", ErrInvalidTransition, s, event)
	}

	next, ok := edges[event]
	if !ok {
		return Unknown, fmt.Errorf("%w: %s does not accept %s", ErrInvalidTransition, s, event)
	}

	return next, nil
}
