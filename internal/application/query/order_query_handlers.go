package query

import (
	"context"
	"fmt"

	"marketplace-backend/pkg/errors"
)

// OrderProjection interface for the order read model
type OrderProjection interface {
	GetByID(ctx context.Context, id string) (interface{}, error)
	ListByBuyer(ctx context.Context, buyerID string, offset, limit int) ([]interface{}, error)
	ListAll(ctx context.Context, offset, limit int) ([]interface{}, error)
}

// GetOrderHandler handles get order by ID queries
type GetOrderHandler struct {
	projection OrderProjection
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(projection OrderProjection) *GetOrderHandler {
	return &GetOrderHandler{
		projection: projection,
	}
}

// Handle processes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, orderID string) (interface{}, error) {
	if orderID == "" {
		return nil, errors.NewValidationError("order_id is required")
	}

	order, err := h.projection.GetByID(ctx, orderID)
	if err != nil {
		return nil, errors.NewNotFoundError("order")
	}

	return order, nil
}

// ListBuyerOrdersHandler lists a buyer's own orders
type ListBuyerOrdersHandler struct {
	projection OrderProjection
}

// NewListBuyerOrdersHandler creates a new buyer orders handler
func NewListBuyerOrdersHandler(projection OrderProjection) *ListBuyerOrdersHandler {
	return &ListBuyerOrdersHandler{
		projection: projection,
	}
}

// Handle processes the buyer orders query
func (h *ListBuyerOrdersHandler) Handle(ctx context.Context, buyerID string, offset, limit int) ([]interface{}, error) {
	if buyerID == "" {
		return nil, errors.NewValidationError("buyer_id is required")
	}
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, err := h.projection.ListByBuyer(ctx, buyerID, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list orders: %v", err))
	}

	return orders, nil
}

// ListOrdersHandler lists all orders (admin)
type ListOrdersHandler struct {
	projection OrderProjection
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(projection OrderProjection) *ListOrdersHandler {
	return &ListOrdersHandler{
		projection: projection,
	}
}

// Handle processes the list orders query
func (h *ListOrdersHandler) Handle(ctx context.Context, offset, limit int) ([]interface{}, error) {
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, err := h.projection.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list orders: %v", err))
	}

	return orders, nil
}
