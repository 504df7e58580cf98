package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"

	"github.com/go-chi/chi/v5"
)

// OrderController handles HTTP requests for order operations
type OrderController struct {
	service *services.OrderService
}

// NewOrderController creates a new order controller
func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{
		service: service,
	}
}

// PlaceOrder handles POST /orders. Items are priced server side from the
// approved catalog; the client only names products and quantities.
func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	buyerID := middleware.GetUserID(r.Context())
	if buyerID == "" {
		response.SendUnauthorized(w, r, "User not authenticated")
		return
	}

	var cmd command.PlaceOrder
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}
	cmd.BuyerID = buyerID

	orderID, err := c.service.PlaceOrder(r.Context(), &cmd)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]string{
		"order_id": orderID,
		"status":   "PENDING",
	})
}

// GetOrder handles GET /orders/{id}
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		response.SendBadRequest(w, r, "Order ID is required")
		return
	}

	order, err := c.service.GetOrder(r.Context(), orderID)
	if err != nil {
		response.SendNotFound(w, r, "Order not found")
		return
	}

	response.SendSuccess(w, r, order)
}

// ListMyOrders handles GET /orders for the authenticated buyer
func (c *OrderController) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	buyerID := middleware.GetUserID(r.Context())
	if buyerID == "" {
		response.SendUnauthorized(w, r, "User not authenticated")
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, err := c.service.ListBuyerOrders(r.Context(), buyerID, offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list orders")
		return
	}

	response.SendSuccess(w, r, orders)
}

// ListOrders handles GET /admin/orders (Admin only)
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, err := c.service.ListOrders(r.Context(), offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list orders")
		return
	}

	response.SendSuccess(w, r, orders)
}

// CancelOrder handles POST /orders/{id}/cancel
func (c *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	cmd := &command.CancelOrder{
		OrderID: chi.URLParam(r, "id"),
		Reason:  req.Reason,
	}

	if err := c.service.CancelOrder(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Order cancelled"})
}

// CompleteOrder handles POST /admin/orders/{id}/complete (Admin only).
// Payment webhooks normally drive completion; this endpoint covers manual
// reconciliation.
func (c *OrderController) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	cmd := &command.CompleteOrder{OrderID: chi.URLParam(r, "id")}

	if err := c.service.CompleteOrder(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Order completed"})
}

// FailOrder handles POST /admin/orders/{id}/fail (Admin only)
func (c *OrderController) FailOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	cmd := &command.FailOrder{
		OrderID: chi.URLParam(r, "id"),
		Reason:  req.Reason,
	}

	if err := c.service.FailOrder(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Order marked as failed"})
}
