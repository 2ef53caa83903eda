package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFromString(t *testing.T) {
	t.Run("should_map_bus_payload_statuses", func(t *testing.T) {
		confirmed, err := order.EventFromString("confirmed")
		require.NoError(t, err)
		assert.Equal(t, order.EventConfirmed, confirmed)

		cancelled, err := order.EventFromString("cancelled")
		require.NoError(t, err)
		assert.Equal(t, order.EventCancelled, cancelled)

		deliveried, err := order.EventFromString("deliveried")
		require.NoError(t, err)
		assert.Equal(t, order.EventDeliveried, deliveried)
	})

	t.Run("should_reject_unknown_strings", func(t *testing.T) {
		for _, s := range []string{"", "declined", "Confirmed", "created"} {
			_, err := order.EventFromString(s)
			require.Error(t, err, "string %q", s)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "confirmed", order.EventConfirmed.String())
	assert.Equal(t, "cancelled", order.EventCancelled.String())
	assert.Equal(t, "deliveried", order.EventDeliveried.String())
	assert.Equal(t, "unknown", order.EventUnknown.String())
}
