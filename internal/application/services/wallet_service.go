package services

import (
	"context"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/query"
)

// WalletService handles vendor earnings and withdrawals
type WalletService struct {
	requestWithdrawalHandler  *command.RequestWithdrawalWithUoWHandler
	completeWithdrawalHandler *command.CompleteWithdrawalWithUoWHandler
	failWithdrawalHandler     *command.FailWithdrawalWithUoWHandler
	getVendorWalletHandler    *query.GetVendorWalletHandler
	listTransactionsHandler   *query.ListWalletTransactionsHandler
}

// NewWalletService creates a new wallet service
func NewWalletService(
	requestWithdrawalHandler *command.RequestWithdrawalWithUoWHandler,
	completeWithdrawalHandler *command.CompleteWithdrawalWithUoWHandler,
	failWithdrawalHandler *command.FailWithdrawalWithUoWHandler,
	getVendorWalletHandler *query.GetVendorWalletHandler,
	listTransactionsHandler *query.ListWalletTransactionsHandler,
) *WalletService {
	return &WalletService{
		requestWithdrawalHandler:  requestWithdrawalHandler,
		completeWithdrawalHandler: completeWithdrawalHandler,
		failWithdrawalHandler:     failWithdrawalHandler,
		getVendorWalletHandler:    getVendorWalletHandler,
		listTransactionsHandler:   listTransactionsHandler,
	}
}

// RequestWithdrawal reserves funds and returns the transaction ID
func (s *WalletService) RequestWithdrawal(ctx context.Context, cmd *command.RequestWithdrawal) (string, error) {
	return s.requestWithdrawalHandler.Handle(ctx, cmd)
}

// CompleteWithdrawal settles a pending withdrawal after transfer
func (s *WalletService) CompleteWithdrawal(ctx context.Context, cmd *command.CompleteWithdrawal) error {
	return s.completeWithdrawalHandler.Handle(ctx, cmd)
}

// FailWithdrawal refunds a failed transfer
func (s *WalletService) FailWithdrawal(ctx context.Context, cmd *command.FailWithdrawal) error {
	return s.failWithdrawalHandler.Handle(ctx, cmd)
}

// GetVendorWallet retrieves a vendor's wallet
func (s *WalletService) GetVendorWallet(ctx context.Context, vendorID string) (interface{}, error) {
	return s.getVendorWalletHandler.Handle(ctx, vendorID)
}

// ListTransactions retrieves a wallet's ledger entries
func (s *WalletService) ListTransactions(ctx context.Context, walletID string, offset, limit int) ([]interface{}, error) {
	return s.listTransactionsHandler.Handle(ctx, walletID, offset, limit)
}
