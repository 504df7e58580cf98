package command

import (
	"context"
	"fmt"

	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/internal/infrastructure/bus"
	"marketplace-backend/pkg/errors"
)

// RequestWithdrawalWithUoWHandler handles withdrawal requests with Unit of Work.
// The amount is reserved against the balance immediately so concurrent requests
// cannot overdraw the wallet.
type RequestWithdrawalWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewRequestWithdrawalWithUoWHandler creates a new request withdrawal handler with UoW
func NewRequestWithdrawalWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *RequestWithdrawalWithUoWHandler {
	return &RequestWithdrawalWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the request withdrawal command and returns the transaction ID
func (h *RequestWithdrawalWithUoWHandler) Handle(ctx context.Context, cmd *RequestWithdrawal) (string, error) {
	if cmd == nil {
		return "", errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return "", errors.NewValidationError("vendor_id is required")
	}
	if cmd.Amount <= 0 {
		return "", errors.NewValidationError("amount must be positive")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	walletRepo := uow.WalletRepository()
	wallet, err := walletRepo.GetByVendorID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return "", errors.NewNotFoundError("wallet")
	}

	tx, err := wallet.RequestWithdrawal(cmd.Amount)
	if err != nil {
		uow.Rollback(ctx)
		return "", errors.NewValidationError(fmt.Sprintf("failed to request withdrawal: %v", err))
	}

	events := wallet.GetUncommittedEvents()

	if err := walletRepo.Save(ctx, wallet); err != nil {
		uow.Rollback(ctx)
		return "", errors.NewInternalError(fmt.Sprintf("failed to save wallet: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish wallet events: %v\n", err)
	}

	return tx.ID, nil
}

// CompleteWithdrawalWithUoWHandler handles withdrawal settlement with Unit of Work
type CompleteWithdrawalWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewCompleteWithdrawalWithUoWHandler creates a new complete withdrawal handler with UoW
func NewCompleteWithdrawalWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *CompleteWithdrawalWithUoWHandler {
	return &CompleteWithdrawalWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the complete withdrawal command
func (h *CompleteWithdrawalWithUoWHandler) Handle(ctx context.Context, cmd *CompleteWithdrawal) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.WalletID == "" {
		return errors.NewValidationError("wallet_id is required")
	}
	if cmd.TransactionID == "" {
		return errors.NewValidationError("transaction_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	walletRepo := uow.WalletRepository()
	wallet, err := walletRepo.GetByID(ctx, cmd.WalletID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("wallet")
	}

	if err := wallet.CompleteWithdrawal(cmd.TransactionID, cmd.TransferRef); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to complete withdrawal: %v", err))
	}

	events := wallet.GetUncommittedEvents()

	if err := walletRepo.Save(ctx, wallet); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save wallet: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish wallet events: %v\n", err)
	}

	return nil
}

// FailWithdrawalWithUoWHandler handles failed transfers with Unit of Work.
// The reserved amount is refunded to the wallet balance.
type FailWithdrawalWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewFailWithdrawalWithUoWHandler creates a new fail withdrawal handler with UoW
func NewFailWithdrawalWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *FailWithdrawalWithUoWHandler {
	return &FailWithdrawalWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the fail withdrawal command
func (h *FailWithdrawalWithUoWHandler) Handle(ctx context.Context, cmd *FailWithdrawal) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.WalletID == "" {
		return errors.NewValidationError("wallet_id is required")
	}
	if cmd.TransactionID == "" {
		return errors.NewValidationError("transaction_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	walletRepo := uow.WalletRepository()
	wallet, err := walletRepo.GetByID(ctx, cmd.WalletID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("wallet")
	}

	if err := wallet.FailWithdrawal(cmd.TransactionID, cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to fail withdrawal: %v", err))
	}

	events := wallet.GetUncommittedEvents()

	if err := walletRepo.Save(ctx, wallet); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save wallet: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish wallet events: %v\n", err)
	}

	return nil
}
