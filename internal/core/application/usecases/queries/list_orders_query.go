package queries

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

const (
	// DefaultPageLimit is applied when the caller does not specify a limit.
	DefaultPageLimit = 20
	maxPageLimit     = 100

	// DefaultSortBy and DefaultSortOrder are applied when the caller does
	// not specify a sort: newest orders first.
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// sortColumns whitelists the sortable fields and maps each to its column.
// Only values from this map ever reach the ORDER BY clause.
func sortColumns() map[string]string {
	return map[string]string{
		"createdAt": "created_at",
		"status":    "status",
		"userId":    "user_id",
	}
}

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a page of orders, optionally filtered by status
// and sorted by one of the whitelisted fields. An empty status filter means
// all statuses.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	statusFilter string
	sortBy       string
	sortOrder    string
	page         int
	limit        int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paginated order listing query. Page numbers
// start at 1. A zero limit selects DefaultPageLimit; empty sort parameters
// select DefaultSortBy/DefaultSortOrder.
func NewListOrdersQuery(statusFilter, sortBy, sortOrder string, page, limit int) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setStatusFilter(statusFilter),
		query.setSortBy(sortBy),
		query.setSortOrder(sortOrder),
		query.setPage(page),
		query.setLimit(limit),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// StatusFilter returns the status wire form to filter by, or empty for all.
func (q ListOrdersQuery) StatusFilter() string {
	return q.statusFilter
}

// SortBy returns the sort field in its wire form, e.g. "createdAt".
func (q ListOrdersQuery) SortBy() string {
	return q.sortBy
}

// SortColumn returns the database column for the sort field.
func (q ListOrdersQuery) SortColumn() string {
	return sortColumns()[q.sortBy]
}

// SortOrder returns "asc" or "desc".
func (q ListOrdersQuery) SortOrder() string {
	return q.sortOrder
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q *ListOrdersQuery) setStatusFilter(statusFilter string) error {
	if statusFilter == "" {
		return nil
	}

	if _, err := order.StatusFromString(statusFilter); err != nil {
		return err
	}

	q.statusFilter = statusFilter
	return nil
}

func (q *ListOrdersQuery) setSortBy(sortBy string) error {
	if sortBy == "" {
		sortBy = DefaultSortBy
	}

	if _, ok := sortColumns()[sortBy]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"sortBy",
			fmt.Errorf("%q is not a sortable field", sortBy),
		)
	}

	q.sortBy = sortBy
	return nil
}

func (q *ListOrdersQuery) setSortOrder(sortOrder string) error {
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		return errs.NewValueIsInvalidErrorWithCause(
			"sortOrder",
			fmt.Errorf("%q is not a sort order, want asc or desc", sortOrder),
		)
	}

	q.sortOrder = sortOrder
	return nil
}

func (q *ListOrdersQuery) setPage(page int) error {
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}

	q.page = page
	return nil
}

func (q *ListOrdersQuery) setLimit(limit int) error {
	if limit == 0 {
		q.limit = DefaultPageLimit
		return nil
	}
	if limit < 1 || limit > maxPageLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageLimit)
	}

	q.limit = limit
	return nil
}

// ListOrdersQueryResponse is one result page plus collection-level meta.
type ListOrdersQueryResponse struct {
	Orders []OrderSummaryResponse
	Meta   ListOrdersMeta
}

// OrderSummaryResponse is one order in a listing, without its items.
type OrderSummaryResponse struct {
	ID        kernel.UUID
	UserID    string
	Status    string
	CreatedAt time.Time
}

// ListOrdersMeta describes the full collection the page was cut from.
// StatusCounts is keyed by status wire form and always covers the whole
// table, ignoring the filter, so dashboards can show totals per status next
// to a filtered page.
type ListOrdersMeta struct {
	Total        int64
	TotalPages   int64
	Page         int
	Limit        int
	StatusCounts map[string]int64
}
