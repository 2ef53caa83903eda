package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its items from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an error unwrapping to
// errs.ErrObjectNotFound when no order matches.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row struct {
		ID        uuid.UUID
		UserID    string
		Status    string
		CreatedAt time.Time
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			status,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&row).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	orderID, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		ID:        orderID,
		UserID:    row.UserID,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		Items:     make([]OrderItemResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var quantity int

		if err = rows.Scan(&productID, &quantity); err != nil {
			return GetOrderQueryResponse{}, err
		}

		itemProductID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}

		response.Items = append(response.Items, OrderItemResponse{
			ProductID: itemProductID,
			Quantity:  quantity,
		})
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}
