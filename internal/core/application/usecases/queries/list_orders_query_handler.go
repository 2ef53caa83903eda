package queries

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order pages from the database, sorted by the
// query's whitelisted field, newest first unless asked otherwise.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query and assembles the page with its meta.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	statusCounts, err := h.countByStatus(ctx)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	var total int64
	for status, count := range statusCounts {
		if query.StatusFilter() == "" || query.StatusFilter() == status {
			total += count
		}
	}

	orders, err := h.page(ctx, query)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	totalPages := (total + int64(query.Limit()) - 1) / int64(query.Limit())

	return ListOrdersQueryResponse{
		Orders: orders,
		Meta: ListOrdersMeta{
			Total:        total,
			TotalPages:   totalPages,
			Page:         query.Page(),
			Limit:        query.Limit(),
			StatusCounts: statusCounts,
		},
	}, nil
}

func (h ListOrdersQueryHandler) countByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64

		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (h ListOrdersQueryHandler) page(
	ctx context.Context,
	query ListOrdersQuery,
) ([]OrderSummaryResponse, error) {
	offset := (query.Page() - 1) * query.Limit()

	sql := `
		SELECT
			id,
			user_id,
			status,
			created_at
		FROM orders
	`
	args := make([]any, 0, 3)
	if query.StatusFilter() != "" {
		sql += ` WHERE status = ?`
		args = append(args, query.StatusFilter())
	}
	// SortColumn and SortOrder only ever hold whitelisted values, so
	// interpolating them is safe.
	direction := "DESC"
	if query.SortOrder() == "asc" {
		direction = "ASC"
	}
	sql += fmt.Sprintf(` ORDER BY %s %s, id LIMIT ? OFFSET ?`, query.SortColumn(), direction)
	args = append(args, query.Limit(), offset)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0, query.Limit())
	for rows.Next() {
		var id uuid.UUID
		var userID, status string
		var createdAt time.Time

		if err = rows.Scan(&id, &userID, &status, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, OrderSummaryResponse{
			ID:        orderID,
			UserID:    userID,
			Status:    status,
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
