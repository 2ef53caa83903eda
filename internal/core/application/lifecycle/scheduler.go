package lifecycle

import (
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// DeliveryScheduler owns the one-shot timers that auto-advance confirmed
// orders to deliveried. Timers are keyed by order id and explicitly
// cancellable, so a cancel racing the delivery delay can retire the timer
// before it fires. Cancellation is belt-and-suspenders: the fire callback is
// expected to re-validate persisted state anyway.
type DeliveryScheduler struct {
	mu     sync.Mutex
	timers map[kernel.UUID]*time.Timer
	logger *slog.Logger
}

// NewDeliveryScheduler creates a scheduler with no pending timers.
func NewDeliveryScheduler(logger *slog.Logger) *DeliveryScheduler {
	return &DeliveryScheduler{
		timers: make(map[kernel.UUID]*time.Timer),
		logger: logger.With("component", "delivery_scheduler"),
	}
}

// Arm schedules fire to run once after delay for the given order id.
// Re-arming an id replaces its pending timer.
func (s *DeliveryScheduler) Arm(id kernel.UUID, delay time.Duration, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pending, ok := s.timers[id]; ok {
		pending.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.retire(id, timer)
		fire()
	})
	s.timers[id] = timer

	s.logger.Debug("delivery timer armed", "orderId", id.String(), "delay", delay)
}

// Cancel stops and forgets the pending timer for id. Cancelling an id with
// no pending timer is a no-op.
func (s *DeliveryScheduler) Cancel(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return
	}

	timer.Stop()
	delete(s.timers, id)
	s.logger.Debug("delivery timer cancelled", "orderId", id.String())
}

// Pending reports whether a timer is outstanding for id.
func (s *DeliveryScheduler) Pending(id kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.timers[id]
	return ok
}

// Stop cancels every pending timer. Called on shutdown.
func (s *DeliveryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// retire removes the map entry for a timer that fired, unless the id was
// re-armed with a newer timer in the meantime.
func (s *DeliveryScheduler) retire(id kernel.UUID, fired *time.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timers[id] == fired {
		delete(s.timers, id)
	}
}
