// Package http is the inbound REST adapter. It translates HTTP requests
// into commands and queries and maps domain errors onto status codes:
// unknown order to 404, lost races against a terminal status to 409, and
// malformed input to 400.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"orderflow/internal/core/application/lifecycle"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler commands.CreateOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		cancelOrderHandler: cancelOrderHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
	}
}

// RegisterRoutes attaches the order API to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/status", s.GetOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		productID, err := kernel.UUIDFromString(itemRequest.ProductID)
		if err != nil {
			return badRequest(ctx, "invalid product id: "+itemRequest.ProductID)
		}

		item, err := order.NewItem(productID, itemRequest.Quantity)
		if err != nil {
			return badRequest(ctx, "invalid order item: "+err.Error())
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.UserID, items)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	case errors.Is(err, lifecycle.ErrOrderAlreadyFinalized):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "order already finalized",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "failed to cancel order",
		})
	}
}

// ListOrders handles GET /api/v1/orders with optional status, sortBy,
// sortOrder, page, and limit query parameters.
func (s *Server) ListOrders(ctx echo.Context) error {
	page, err := intQueryParam(ctx, "page", 1)
	if err != nil {
		return badRequest(ctx, "invalid page")
	}

	limit, err := intQueryParam(ctx, "limit", 0)
	if err != nil {
		return badRequest(ctx, "invalid limit")
	}

	query, err := queries.NewListOrdersQuery(
		ctx.QueryParam("status"),
		ctx.QueryParam("sortBy"),
		ctx.QueryParam("sortOrder"),
		page,
		limit,
	)
	if err != nil {
		return badRequest(ctx, "invalid listing parameters: "+err.Error())
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "failed to retrieve orders",
		})
	}

	orders := make([]OrderSummary, len(result.Orders))
	for i, summary := range result.Orders {
		orders[i] = OrderSummary{
			ID:        summary.ID.String(),
			UserID:    summary.UserID,
			Status:    summary.Status,
			CreatedAt: summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, ListOrdersResponse{
		Orders: orders,
		Meta: ListMeta{
			Total:        result.Meta.Total,
			TotalPages:   result.Meta.TotalPages,
			Page:         result.Meta.Page,
			Limit:        result.Meta.Limit,
			StatusCounts: result.Meta.StatusCounts,
		},
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	result, err := s.getOrder(ctx)
	if err != nil {
		return s.respondOrderError(ctx, err)
	}

	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:        result.ID.String(),
		UserID:    result.UserID,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
		Items:     items,
	})
}

// GetOrderStatus handles GET /api/v1/orders/:id/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	result, err := s.getOrder(ctx)
	if err != nil {
		return s.respondOrderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		ID:     result.ID.String(),
		Status: result.Status,
	})
}

// getOrder resolves the :id path parameter and runs the single-order
// query. Errors are domain errors; respondOrderError maps them.
func (s *Server) getOrder(ctx echo.Context) (queries.GetOrderQueryResponse, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return queries.GetOrderQueryResponse{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}

	return s.getOrderHandler.Handle(ctx.Request().Context(), query)
}

func (s *Server) respondOrderError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return badRequest(ctx, "invalid order id")
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "failed to retrieve order",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
