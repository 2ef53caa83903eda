package lifecycle

import (
	"sync"
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetOrCreate_ReturnsSameInstance(t *testing.T) {
	registry := NewRegistry()
	id := kernel.NewUUID()

	first := registry.GetOrCreate(id, order.Created)
	second := registry.GetOrCreate(id, order.Confirmed)

	assert.Same(t, first, second)
	// An existing actor keeps its state; the second initial status is ignored.
	assert.Equal(t, order.Created, second.State())
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_GetOrCreate_ConcurrentCallersSameID(t *testing.T) {
	registry := NewRegistry()
	id := kernel.NewUUID()

	const callers = 32
	actors := make([]*Actor, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			actors[i] = registry.GetOrCreate(id, order.Created)
		}()
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		require.Same(t, actors[0], actors[i])
	}
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_Get_UnknownIDReturnsFalse(t *testing.T) {
	registry := NewRegistry()

	actor, ok := registry.Get(kernel.NewUUID())
	assert.False(t, ok)
	assert.Nil(t, actor)
}

func TestRegistry_Remove_IsIdempotent(t *testing.T) {
	registry := NewRegistry()
	id := kernel.NewUUID()
	registry.GetOrCreate(id, order.Created)

	registry.Remove(id)
	registry.Remove(id)

	_, ok := registry.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_ActiveIDs_ListsLiveActors(t *testing.T) {
	registry := NewRegistry()
	first := kernel.NewUUID()
	second := kernel.NewUUID()
	registry.GetOrCreate(first, order.Created)
	registry.GetOrCreate(second, order.Confirmed)

	ids := registry.ActiveIDs()
	require.Len(t, ids, 2)
	assert.ElementsMatch(t, []kernel.UUID{first, second}, ids)
}
