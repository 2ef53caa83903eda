// Package lifecycle orchestrates the order state machine across its three
// competing drivers: buyer cancel requests arriving over HTTP, payment
// verdicts arriving over the event bus, and the internal delivery timer.
//
// The package includes:
//   - Actor: one live state-machine instance per in-flight order
//   - Registry: the concurrency-safe store of live actors keyed by order id
//   - DeliveryScheduler: cancellable one-shot timers that auto-advance
//     confirmed orders to deliveried
//   - Orchestrator: wires registry, scheduler, persistence, bus, and
//     notification together
//
// Correctness rests on one mechanism: every transition for a given order id
// runs inside that order's actor mutex, so at most one transition commits
// per event and later contenders observe an invalid transition. There is no
// cross-process transaction between consuming a bus message and persisting
// the new status; the actor only advances its in-memory state after the
// write succeeds, which keeps a failed write retryable, but a message whose
// write keeps failing is lost to bus-level retry policy.
package lifecycle
