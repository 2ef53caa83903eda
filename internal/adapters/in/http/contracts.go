package http

import "time"

// CreateOrderRequest is the POST /api/v1/orders body.
type CreateOrderRequest struct {
	UserID string             `json:"userId"`
	Items  []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one order line in a creation request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderResponse carries the identifier of a freshly placed order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// OrderResponse is a full order read model.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one order line in a read model.
type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderSummary is one order in a listing, without items.
type OrderSummary struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListOrdersResponse is one page of orders plus collection meta.
type ListOrdersResponse struct {
	Orders []OrderSummary `json:"orders"`
	Meta   ListMeta       `json:"meta"`
}

// ListMeta describes the collection the page was cut from. StatusCounts is
// keyed by status and covers the whole collection regardless of filter.
type ListMeta struct {
	Total        int64            `json:"total"`
	TotalPages   int64            `json:"totalPages"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	StatusCounts map[string]int64 `json:"statusCounts"`
}

// OrderStatusResponse is the minimal status read model.
type OrderStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Error is the uniform error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
