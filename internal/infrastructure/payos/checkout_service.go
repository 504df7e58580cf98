package payos

import (
	"context"
	"fmt"
	"strconv"

	"marketplace-backend/internal/domain/aggregate"

	payossdk "github.com/payOSHQ/payos-lib-golang"
)

// Config holds the PayOS gateway credentials and redirect URLs
type Config struct {
	ClientID    string
	APIKey      string
	ChecksumKey string
	PartnerCode string
	ReturnURL   string
	CancelURL   string
}

// CheckoutItem is one purchasable line on a checkout page
type CheckoutItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// CheckoutRequest carries everything needed to open a checkout session
type CheckoutRequest struct {
	OrderCode   int64          `json:"orderCode"`
	Amount      int            `json:"amount"`
	Description string         `json:"description"`
	Items       []CheckoutItem `json:"items"`
	ReturnURL   string         `json:"returnUrl"`
	CancelURL   string         `json:"cancelUrl"`
}

// CheckoutSession is the gateway's view of a created checkout
type CheckoutSession struct {
	OrderCode     int64  `json:"orderCode"`
	Amount        int    `json:"amount"`
	Status        string `json:"status"`
	PaymentLinkID string `json:"paymentLinkId"`
	CheckoutURL   string `json:"checkoutUrl"`
	QRCode        string `json:"qrCode"`
}

// CheckoutStatus reports the settlement state of an existing checkout
type CheckoutStatus struct {
	OrderCode       int64  `json:"orderCode"`
	Amount          int    `json:"amount"`
	AmountPaid      int    `json:"amountPaid"`
	AmountRemaining int    `json:"amountRemaining"`
	Status          string `json:"status"`
}

// CheckoutService wraps the official PayOS SDK for order payments
type CheckoutService struct {
	initialized bool
	config      *Config
}

// NewCheckoutService initializes the PayOS SDK with the configured keys
func NewCheckoutService(config *Config) (*CheckoutService, error) {
	if config.ClientID == "" {
		return nil, fmt.Errorf("PAYOS_CLIENT_ID is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("PAYOS_API_KEY is required")
	}
	if config.ChecksumKey == "" {
		return nil, fmt.Errorf("PAYOS_CHECKSUM_KEY is required")
	}

	var err error
	if config.PartnerCode != "" {
		err = payossdk.Key(config.ClientID, config.APIKey, config.ChecksumKey, config.PartnerCode)
	} else {
		err = payossdk.Key(config.ClientID, config.APIKey, config.ChecksumKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PayOS: %w", err)
	}

	return &CheckoutService{
		initialized: true,
		config:      config,
	}, nil
}

// CreateCheckout opens a checkout session for an order
func (s *CheckoutService) CreateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if !s.initialized {
		return nil, fmt.Errorf("PayOS service not initialized")
	}

	if req.ReturnURL == "" {
		req.ReturnURL = s.config.ReturnURL
	}
	if req.CancelURL == "" {
		req.CancelURL = s.config.CancelURL
	}

	var items []payossdk.Item
	for _, item := range req.Items {
		items = append(items, payossdk.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	checkoutReq := payossdk.CheckoutRequestType{
		OrderCode:   req.OrderCode,
		Amount:      req.Amount,
		Description: req.Description,
		Items:       items,
		ReturnUrl:   req.ReturnURL,
		CancelUrl:   req.CancelURL,
	}

	resp, err := payossdk.CreatePaymentLink(checkoutReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	return &CheckoutSession{
		OrderCode:     resp.OrderCode,
		Amount:        resp.Amount,
		Status:        resp.Status,
		PaymentLinkID: resp.PaymentLinkId,
		CheckoutURL:   resp.CheckoutUrl,
		QRCode:        resp.QRCode,
	}, nil
}

// GetCheckoutStatus retrieves the settlement state of a checkout
func (s *CheckoutService) GetCheckoutStatus(ctx context.Context, orderCode int64) (*CheckoutStatus, error) {
	if !s.initialized {
		return nil, fmt.Errorf("PayOS service not initialized")
	}

	resp, err := payossdk.GetPaymentLinkInformation(strconv.FormatInt(orderCode, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment information: %w", err)
	}

	return &CheckoutStatus{
		OrderCode:       resp.OrderCode,
		Amount:          resp.Amount,
		AmountPaid:      resp.AmountPaid,
		AmountRemaining: resp.AmountRemaining,
		Status:          resp.Status,
	}, nil
}

// CancelCheckout cancels an open checkout session
func (s *CheckoutService) CancelCheckout(ctx context.Context, orderCode int64, reason string) error {
	if !s.initialized {
		return fmt.Errorf("PayOS service not initialized")
	}

	if _, err := payossdk.CancelPaymentLink(strconv.FormatInt(orderCode, 10), &reason); err != nil {
		return fmt.Errorf("failed to cancel payment link: %w", err)
	}
	return nil
}

// VerifyWebhook validates the signature of a gateway callback
func (s *CheckoutService) VerifyWebhook(webhookData payossdk.WebhookType) (*payossdk.WebhookDataType, error) {
	if !s.initialized {
		return nil, fmt.Errorf("PayOS service not initialized")
	}

	verified, err := payossdk.VerifyPaymentWebhookData(webhookData)
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook data: %w", err)
	}
	return verified, nil
}

// PaymentStatusFromGateway maps a PayOS status string to the order status
func PaymentStatusFromGateway(gatewayStatus string) aggregate.PaymentStatus {
	switch gatewayStatus {
	case "PAID":
		return aggregate.PaymentStatusCompleted
	case "CANCELLED":
		return aggregate.PaymentStatusCancelled
	case "EXPIRED":
		return aggregate.PaymentStatusFailed
	default:
		return aggregate.PaymentStatusPending
	}
}
