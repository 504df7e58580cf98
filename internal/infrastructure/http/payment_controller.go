package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/internal/domain/aggregate"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/internal/infrastructure/payos"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"

	"github.com/go-chi/chi/v5"
	payossdk "github.com/payOSHQ/payos-lib-golang"
)

// PaymentController bridges orders and the PayOS checkout gateway
type PaymentController struct {
	checkoutService *payos.CheckoutService
	orderService    *services.OrderService
	orderRepo       repository.OrderRepository
}

// NewPaymentController creates a new payment controller
func NewPaymentController(checkoutService *payos.CheckoutService, orderService *services.OrderService, orderRepo repository.OrderRepository) *PaymentController {
	return &PaymentController{
		checkoutService: checkoutService,
		orderService:    orderService,
		orderRepo:       orderRepo,
	}
}

// CreateCheckout handles POST /orders/{id}/checkout. The gateway order code
// is the numeric part of the order number, so webhooks can be mapped back.
func (c *PaymentController) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		response.SendBadRequest(w, r, "Order ID is required")
		return
	}

	order, err := c.orderRepo.GetByID(r.Context(), orderID)
	if err != nil {
		response.SendNotFound(w, r, "Order not found")
		return
	}

	if order.Status() != aggregate.PaymentStatusPending {
		response.SendConflict(w, r, "Order is not awaiting payment")
		return
	}

	orderCode, err := orderCodeFromNumber(order.OrderNumber())
	if err != nil {
		response.SendInternalError(w, r, "Invalid order number")
		return
	}

	items := make([]payos.CheckoutItem, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, payos.CheckoutItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    int(item.UnitPrice),
		})
	}

	session, err := c.checkoutService.CreateCheckout(r.Context(), &payos.CheckoutRequest{
		OrderCode:   orderCode,
		Amount:      int(order.Total()),
		Description: fmt.Sprintf("Order %s", order.OrderNumber()),
		Items:       items,
	})
	if err != nil {
		response.SendInternalError(w, r, "Failed to create checkout session")
		return
	}

	response.SendSuccess(w, r, session)
}

// GetCheckoutStatus handles GET /orders/{id}/checkout
func (c *PaymentController) GetCheckoutStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := c.orderRepo.GetByID(r.Context(), orderID)
	if err != nil {
		response.SendNotFound(w, r, "Order not found")
		return
	}

	orderCode, err := orderCodeFromNumber(order.OrderNumber())
	if err != nil {
		response.SendInternalError(w, r, "Invalid order number")
		return
	}

	status, err := c.checkoutService.GetCheckoutStatus(r.Context(), orderCode)
	if err != nil {
		response.SendInternalError(w, r, "Failed to get checkout status")
		return
	}

	response.SendSuccess(w, r, status)
}

// HandleWebhook handles POST /payments/webhook. The gateway calls back after
// a buyer pays or a checkout expires; a verified PAID callback settles the
// order and credits vendor wallets.
func (c *PaymentController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var webhook payossdk.WebhookType
	if err := json.NewDecoder(r.Body).Decode(&webhook); err != nil {
		response.SendBadRequest(w, r, "Invalid webhook payload")
		return
	}

	data, err := c.checkoutService.VerifyWebhook(webhook)
	if err != nil {
		response.SendBadRequest(w, r, "Invalid webhook signature")
		return
	}

	order, err := c.orderRepo.GetByOrderNumber(r.Context(), fmt.Sprintf("ORD-%d", data.OrderCode))
	if err != nil {
		response.SendNotFound(w, r, "Order not found")
		return
	}

	if webhook.Success {
		err = c.orderService.CompleteOrder(r.Context(), &command.CompleteOrder{OrderID: order.ID()})
	} else {
		err = c.orderService.FailOrder(r.Context(), &command.FailOrder{
			OrderID: order.ID(),
			Reason:  webhook.Desc,
		})
	}
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Webhook processed"})
}

func orderCodeFromNumber(orderNumber string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(orderNumber, "ORD-"), 10, 64)
}
