package services

import (
	"context"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/query"
)

// OrderService handles checkout and payment outcomes
type OrderService struct {
	placeOrderHandler     *command.PlaceOrderWithUoWHandler
	completeOrderHandler  *command.CompleteOrderWithUoWHandler
	failOrderHandler      *command.FailOrderWithUoWHandler
	cancelOrderHandler    *command.CancelOrderWithUoWHandler
	getOrderHandler       *query.GetOrderHandler
	listBuyerOrders       *query.ListBuyerOrdersHandler
	listOrdersHandler     *query.ListOrdersHandler
}

// NewOrderService creates a new order service
func NewOrderService(
	placeOrderHandler *command.PlaceOrderWithUoWHandler,
	completeOrderHandler *command.CompleteOrderWithUoWHandler,
	failOrderHandler *command.FailOrderWithUoWHandler,
	cancelOrderHandler *command.CancelOrderWithUoWHandler,
	getOrderHandler *query.GetOrderHandler,
	listBuyerOrders *query.ListBuyerOrdersHandler,
	listOrdersHandler *query.ListOrdersHandler,
) *OrderService {
	return &OrderService{
		placeOrderHandler:    placeOrderHandler,
		completeOrderHandler: completeOrderHandler,
		failOrderHandler:     failOrderHandler,
		cancelOrderHandler:   cancelOrderHandler,
		getOrderHandler:      getOrderHandler,
		listBuyerOrders:      listBuyerOrders,
		listOrdersHandler:    listOrdersHandler,
	}
}

// PlaceOrder creates a pending order and returns its ID
func (s *OrderService) PlaceOrder(ctx context.Context, cmd *command.PlaceOrder) (string, error) {
	return s.placeOrderHandler.Handle(ctx, cmd)
}

// CompleteOrder settles a paid order and credits vendor wallets
func (s *OrderService) CompleteOrder(ctx context.Context, cmd *command.CompleteOrder) error {
	return s.completeOrderHandler.Handle(ctx, cmd)
}

// FailOrder records a failed payment
func (s *OrderService) FailOrder(ctx context.Context, cmd *command.FailOrder) error {
	return s.failOrderHandler.Handle(ctx, cmd)
}

// CancelOrder cancels a pending order
func (s *OrderService) CancelOrder(ctx context.Context, cmd *command.CancelOrder) error {
	return s.cancelOrderHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (interface{}, error) {
	return s.getOrderHandler.Handle(ctx, orderID)
}

// ListBuyerOrders retrieves a buyer's order history
func (s *OrderService) ListBuyerOrders(ctx context.Context, buyerID string, offset, limit int) ([]interface{}, error) {
	return s.listBuyerOrders.Handle(ctx, buyerID, offset, limit)
}

// ListOrders retrieves all orders (admin)
func (s *OrderService) ListOrders(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return s.listOrdersHandler.Handle(ctx, offset, limit)
}
