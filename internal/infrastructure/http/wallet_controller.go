package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/internal/infrastructure/payos"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"

	"github.com/go-chi/chi/v5"
)

// WalletController handles HTTP requests for vendor wallets and withdrawals
type WalletController struct {
	service         *services.WalletService
	transferService *payos.TransferService
}

// NewWalletController creates a new wallet controller
func NewWalletController(service *services.WalletService, transferService *payos.TransferService) *WalletController {
	return &WalletController{
		service:         service,
		transferService: transferService,
	}
}

// GetVendorWallet handles GET /vendors/{id}/wallet
func (c *WalletController) GetVendorWallet(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")
	if vendorID == "" {
		response.SendBadRequest(w, r, "Vendor ID is required")
		return
	}

	wallet, err := c.service.GetVendorWallet(r.Context(), vendorID)
	if err != nil {
		response.SendNotFound(w, r, "Wallet not found")
		return
	}

	response.SendSuccess(w, r, wallet)
}

// ListTransactions handles GET /wallets/{id}/transactions
func (c *WalletController) ListTransactions(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "id")
	if walletID == "" {
		response.SendBadRequest(w, r, "Wallet ID is required")
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	transactions, err := c.service.ListTransactions(r.Context(), walletID, offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list wallet transactions")
		return
	}

	response.SendSuccess(w, r, transactions)
}

// RequestWithdrawal handles POST /wallets/withdrawals (Vendor only).
// The amount is reserved immediately; the payout happens when an admin
// settles the request.
func (c *WalletController) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var cmd command.RequestWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	transactionID, err := c.service.RequestWithdrawal(r.Context(), &cmd)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]string{
		"transaction_id": transactionID,
		"status":         "PENDING",
	})
}

// SettleWithdrawal handles POST /admin/withdrawals/settle (Admin only).
// It transfers the reserved amount to the vendor's bank account through
// PayOS, then finalizes or refunds the ledger entry based on the outcome.
func (c *WalletController) SettleWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WalletID      string  `json:"wallet_id"`
		TransactionID string  `json:"transaction_id"`
		Amount        float64 `json:"amount"`
		BankName      string  `json:"bank_name"`
		AccountNumber string  `json:"account_number"`
		Description   string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	if req.WalletID == "" || req.TransactionID == "" {
		response.SendBadRequest(w, r, "Wallet ID and transaction ID are required")
		return
	}

	info, err := c.transferService.ProcessWithdrawal(
		r.Context(),
		req.TransactionID,
		req.BankName,
		req.AccountNumber,
		int(req.Amount),
		req.Description,
	)
	if err != nil {
		failCmd := &command.FailWithdrawal{
			WalletID:      req.WalletID,
			TransactionID: req.TransactionID,
			Reason:        err.Error(),
		}
		if failErr := c.service.FailWithdrawal(r.Context(), failCmd); failErr != nil {
			middleware.HandleError(w, r, failErr)
			return
		}
		response.SendSuccess(w, r, map[string]string{
			"status":  "FAILED",
			"message": "Transfer failed, reserved amount refunded",
		})
		return
	}

	completeCmd := &command.CompleteWithdrawal{
		WalletID:      req.WalletID,
		TransactionID: req.TransactionID,
		TransferRef:   info.TransferRef,
	}
	if err := c.service.CompleteWithdrawal(r.Context(), completeCmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"status":       "COMPLETED",
		"transfer_ref": info.TransferRef,
		"processed_at": info.ProcessedAt,
	})
}

// FailWithdrawal handles POST /admin/withdrawals/fail (Admin only).
// Used to reject a withdrawal without attempting a transfer.
func (c *WalletController) FailWithdrawal(w http.ResponseWriter, r *http.Request) {
	var cmd command.FailWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	if err := c.service.FailWithdrawal(r.Context(), &cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Withdrawal rejected and refunded"})
}
