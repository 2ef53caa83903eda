package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		errNotConstructed := errors.New("order not constructed")

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedUsage(t *testing.T) {
	type cancelRequest struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	errNotConstructed := errors.New("cancelRequest must be created via constructor")

	newCancelRequest := func(orderID string) (cancelRequest, error) {
		if orderID == "" {
			return cancelRequest{}, errors.New("orderID is required")
		}
		return cancelRequest{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_object_validates", func(t *testing.T) {
		req, err := newCancelRequest("7b8efb1c")
		require.NoError(t, err)
		require.NoError(t, req.guard.Validate(errNotConstructed))
		assert.Equal(t, "7b8efb1c", req.orderID)
	})

	t.Run("zero_value_object_fails_validation", func(t *testing.T) {
		var req cancelRequest
		err := req.guard.Validate(errNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})
}
