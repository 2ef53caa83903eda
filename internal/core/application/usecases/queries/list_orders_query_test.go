package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_Success(t *testing.T) {
	query, err := queries.NewListOrdersQuery("confirmed", "status", "asc", 2, 50)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "confirmed", query.StatusFilter())
	assert.Equal(t, "status", query.SortBy())
	assert.Equal(t, "asc", query.SortOrder())
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 50, query.Limit())
}

func TestNewListOrdersQuery_EmptyFilterMeansAll(t *testing.T) {
	query, err := queries.NewListOrdersQuery("", "", "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, query.StatusFilter())
}

func TestNewListOrdersQuery_ZeroLimitUsesDefault(t *testing.T) {
	query, err := queries.NewListOrdersQuery("", "", "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultPageLimit, query.Limit())
}

func TestNewListOrdersQuery_EmptySortUsesDefaults(t *testing.T) {
	query, err := queries.NewListOrdersQuery("", "", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultSortBy, query.SortBy())
	assert.Equal(t, queries.DefaultSortOrder, query.SortOrder())
	assert.Equal(t, "created_at", query.SortColumn())
}

func TestNewListOrdersQuery_SortableFields(t *testing.T) {
	tests := []struct {
		sortBy string
		column string
	}{
		{sortBy: "createdAt", column: "created_at"},
		{sortBy: "status", column: "status"},
		{sortBy: "userId", column: "user_id"},
	}

	for _, test := range tests {
		t.Run(test.sortBy, func(t *testing.T) {
			query, err := queries.NewListOrdersQuery("", test.sortBy, "asc", 1, 10)
			require.NoError(t, err)
			assert.Equal(t, test.column, query.SortColumn())
		})
	}
}

func TestNewListOrdersQuery_UnknownSortFieldRejected(t *testing.T) {
	_, err := queries.NewListOrdersQuery("", "items", "asc", 1, 10)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	// Raw column names are not part of the wire form.
	_, err = queries.NewListOrdersQuery("", "created_at", "asc", 1, 10)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListOrdersQuery_UnknownSortOrderRejected(t *testing.T) {
	_, err := queries.NewListOrdersQuery("", "createdAt", "descending", 1, 10)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListOrdersQuery_UnknownStatusRejected(t *testing.T) {
	_, err := queries.NewListOrdersQuery("shipped", "", "", 1, 10)
	require.Error(t, err)
}

func TestNewListOrdersQuery_PageOutOfRange(t *testing.T) {
	_, err := queries.NewListOrdersQuery("", "", "", 0, 10)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewListOrdersQuery_LimitOutOfRange(t *testing.T) {
	_, err := queries.NewListOrdersQuery("", "", "", 1, 101)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListOrdersQuery("", "", "", 1, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestListOrdersQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.ListOrdersQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}
