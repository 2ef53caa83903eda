package lifecycle

import (
	"sync"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Registry is the concurrency-safe store of live actors keyed by order id.
// The registry lock only guards the map itself; per-order serialization is
// the actor mutex. Operations on different order ids never contend beyond
// the map access.
type Registry struct {
	mu     sync.RWMutex
	actors map[kernel.UUID]*Actor
}

// NewRegistry creates an empty actor registry.
func NewRegistry() *Registry {
	return &Registry{
		actors: make(map[kernel.UUID]*Actor),
	}
}

// GetOrCreate returns the live actor for id, creating one with the given
// initial status when none exists. Concurrent callers for the same id
// observe the same instance.
func (r *Registry) GetOrCreate(id kernel.UUID, initial order.Status) *Actor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actor, ok := r.actors[id]; ok {
		return actor
	}

	actor := newActor(id, initial)
	r.actors[id] = actor
	return actor
}

// Get returns the live actor for id, or false when the order is unknown or
// already finalized.
func (r *Registry) Get(id kernel.UUID) (*Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actor, ok := r.actors[id]
	return actor, ok
}

// Remove destroys the registry entry for id. Removing an absent id is a
// no-op, so the call is idempotent.
func (r *Registry) Remove(id kernel.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.actors, id)
}

// Len returns the number of live actors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actors)
}

// ActiveIDs returns the order ids with a live actor. Used by the watchdog
// job to cross-check persisted in-flight orders against live actors.
func (r *Registry) ActiveIDs() []kernel.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]kernel.UUID, 0, len(r.actors))
	for id := range r.actors {
		ids = append(ids, id)
	}
	return ids
}
