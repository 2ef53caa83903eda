package ports

// Notifier is the outbound port for telling connected listeners that some
// order changed state. Listeners are expected to re-query; no payload
// contract exists.
//
// BroadcastStateChanged is best-effort and fire-and-forget: zero subscribers
// is a valid state and delivery failures must never propagate back into the
// orchestration path.
type Notifier interface {
	BroadcastStateChanged()
}
