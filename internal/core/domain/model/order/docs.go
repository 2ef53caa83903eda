// Package order provides the domain model for the order lifecycle. It
// implements the Order aggregate root together with the status state machine
// that governs every lifecycle transition.
//
// The package includes:
//   - Order: the aggregate root carrying identity, buyer, items, and status
//   - Status: a transition-table state machine over the order lifecycle
//   - Event: the tagged transition triggers (confirmed, cancelled, deliveried)
//
// Key business rules:
//   - Orders start in the created status
//   - created -> confirmed or cancelled; confirmed -> deliveried or cancelled
//   - cancelled and deliveried are terminal: no event may leave them
//   - An illegal event yields ErrInvalidTransition and never mutates the order
//
// The "deliveried" spelling is deliberate: it is the status value used on the
// wire and in the database by every collaborator of this service.
package order
