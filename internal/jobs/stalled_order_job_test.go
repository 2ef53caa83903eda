package jobs

import (
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoredOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), 1)
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(kernel.NewUUID(), "user-1", []order.Item{item}, order.Created, createdAt)
	require.NoError(t, err)
	return aggregate
}

func TestStalledOrderJob_FindStalled(t *testing.T) {
	job := NewStalledOrderJob(nil, nil, 5*time.Minute, "* * * * *", slog.Default())
	cutoff := time.Now().UTC().Add(-5 * time.Minute)

	oldWithActor := restoredOrder(t, time.Now().UTC().Add(-time.Hour))
	oldWithoutActor := restoredOrder(t, time.Now().UTC().Add(-time.Hour))
	freshWithoutActor := restoredOrder(t, time.Now().UTC())

	live := map[kernel.UUID]struct{}{
		oldWithActor.ID(): {},
	}

	stalled := job.findStalled(
		[]*order.Order{oldWithActor, oldWithoutActor, freshWithoutActor},
		live,
		cutoff,
	)

	require.Len(t, stalled, 1)
	assert.True(t, stalled[0].ID().IsEqual(oldWithoutActor.ID()))
}

func TestStalledOrderJob_FindStalled_Empty(t *testing.T) {
	job := NewStalledOrderJob(nil, nil, 5*time.Minute, "* * * * *", slog.Default())

	stalled := job.findStalled(nil, map[kernel.UUID]struct{}{}, time.Now().UTC())
	assert.Empty(t, stalled)
}
