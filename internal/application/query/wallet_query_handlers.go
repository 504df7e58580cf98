package query

import (
	"context"
	"fmt"

	"marketplace-backend/pkg/errors"
)

// WalletProjection interface for the wallet read model
type WalletProjection interface {
	GetByVendorID(ctx context.Context, vendorID string) (interface{}, error)
	ListTransactions(ctx context.Context, walletID string, offset, limit int) ([]interface{}, error)
}

// GetVendorWalletHandler returns a vendor's wallet with its balance
type GetVendorWalletHandler struct {
	projection WalletProjection
}

// NewGetVendorWalletHandler creates a new vendor wallet handler
func NewGetVendorWalletHandler(projection WalletProjection) *GetVendorWalletHandler {
	return &GetVendorWalletHandler{
		projection: projection,
	}
}

// Handle processes the get vendor wallet query
func (h *GetVendorWalletHandler) Handle(ctx context.Context, vendorID string) (interface{}, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor_id is required")
	}

	wallet, err := h.projection.GetByVendorID(ctx, vendorID)
	if err != nil {
		return nil, errors.NewNotFoundError("wallet")
	}

	return wallet, nil
}

// ListWalletTransactionsHandler lists a wallet's ledger entries
type ListWalletTransactionsHandler struct {
	projection WalletProjection
}

// NewListWalletTransactionsHandler creates a new wallet transactions handler
func NewListWalletTransactionsHandler(projection WalletProjection) *ListWalletTransactionsHandler {
	return &ListWalletTransactionsHandler{
		projection: projection,
	}
}

// Handle processes the wallet transactions query
func (h *ListWalletTransactionsHandler) Handle(ctx context.Context, walletID string, offset, limit int) ([]interface{}, error) {
	if walletID == "" {
		return nil, errors.NewValidationError("wallet_id is required")
	}
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	transactions, err := h.projection.ListTransactions(ctx, walletID, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list wallet transactions: %v", err))
	}

	return transactions, nil
}
