package command

import (
	"context"
	"fmt"
	"sort"

	"marketplace-backend/internal/domain/aggregate"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/internal/infrastructure/bus"
	"marketplace-backend/pkg/errors"
)

// PlaceOrderWithUoWHandler handles order placement commands with Unit of Work
type PlaceOrderWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewPlaceOrderWithUoWHandler creates a new place order handler with UoW
func NewPlaceOrderWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *PlaceOrderWithUoWHandler {
	return &PlaceOrderWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the place order command. Line items are priced from the
// current catalog, never from client input.
func (h *PlaceOrderWithUoWHandler) Handle(ctx context.Context, cmd *PlaceOrder) (string, error) {
	if cmd == nil {
		return "", errors.NewValidationError("command cannot be nil")
	}
	if cmd.BuyerID == "" {
		return "", errors.NewValidationError("buyer_id is required")
	}
	if len(cmd.Items) == 0 {
		return "", errors.NewValidationError("order must contain at least one item")
	}
	for _, item := range cmd.Items {
		if item.ProductID == "" {
			return "", errors.NewValidationError("product_id is required for every item")
		}
		if item.Quantity <= 0 {
			return "", errors.NewValidationError("quantity must be positive")
		}
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	if _, err := uow.UserRepository().GetByID(ctx, cmd.BuyerID); err != nil {
		uow.Rollback(ctx)
		return "", errors.NewNotFoundError("user")
	}

	productRepo := uow.ProductRepository()
	items := make([]aggregate.OrderItem, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		product, err := productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			uow.Rollback(ctx)
			return "", errors.NewNotFoundError("product")
		}
		if product.Status() != aggregate.ProductStatusApproved {
			uow.Rollback(ctx)
			return "", errors.NewValidationError(fmt.Sprintf("product %s is not available for purchase", item.ProductID))
		}
		items = append(items, aggregate.OrderItem{
			ProductID: product.ID(),
			VendorID:  product.VendorID(),
			Name:      product.Name(),
			UnitPrice: product.Price(),
			Quantity:  item.Quantity,
		})
	}

	order, err := aggregate.NewOrder(cmd.BuyerID, items)
	if err != nil {
		uow.Rollback(ctx)
		return "", errors.NewValidationError(fmt.Sprintf("failed to place order: %v", err))
	}

	// Get events BEFORE saving (Save() will clear them)
	events := order.GetUncommittedEvents()

	orderRepo := uow.OrderRepository()
	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return "", errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	// Publish events AFTER successful commit (eventual consistency)
	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish order events: %v\n", err)
	}

	return order.ID(), nil
}

// CompleteOrderWithUoWHandler marks a paid order as completed and credits each
// vendor's wallet with its share of the order total, all in one transaction.
type CompleteOrderWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewCompleteOrderWithUoWHandler creates a new complete order handler with UoW
func NewCompleteOrderWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *CompleteOrderWithUoWHandler {
	return &CompleteOrderWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the complete order command
func (h *CompleteOrderWithUoWHandler) Handle(ctx context.Context, cmd *CompleteOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.OrderID == "" {
		return errors.NewValidationError("order_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("order")
	}

	if err := order.MarkCompleted(); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to complete order: %v", err))
	}

	events := order.GetUncommittedEvents()

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	// Credit each vendor's wallet with its share. Vendors are processed in a
	// stable order so retries touch wallets the same way.
	shares := order.VendorShares()
	vendorIDs := make([]string, 0, len(shares))
	for vendorID := range shares {
		vendorIDs = append(vendorIDs, vendorID)
	}
	sort.Strings(vendorIDs)

	walletRepo := uow.WalletRepository()
	for _, vendorID := range vendorIDs {
		wallet, err := walletRepo.GetByVendorID(ctx, vendorID)
		if err != nil {
			wallet, err = aggregate.NewWallet(vendorID)
			if err != nil {
				uow.Rollback(ctx)
				return errors.NewInternalError(fmt.Sprintf("failed to open wallet for vendor %s: %v", vendorID, err))
			}
		}
		if _, err := wallet.CreditSale(order.ID(), shares[vendorID]); err != nil {
			uow.Rollback(ctx)
			return errors.NewInternalError(fmt.Sprintf("failed to credit wallet for vendor %s: %v", vendorID, err))
		}
		events = append(events, wallet.GetUncommittedEvents()...)
		if err := walletRepo.Save(ctx, wallet); err != nil {
			uow.Rollback(ctx)
			return errors.NewInternalError(fmt.Sprintf("failed to save wallet for vendor %s: %v", vendorID, err))
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish order events: %v\n", err)
	}

	return nil
}

// FailOrderWithUoWHandler handles failed payment commands with Unit of Work
type FailOrderWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewFailOrderWithUoWHandler creates a new fail order handler with UoW
func NewFailOrderWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *FailOrderWithUoWHandler {
	return &FailOrderWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the fail order command
func (h *FailOrderWithUoWHandler) Handle(ctx context.Context, cmd *FailOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.OrderID == "" {
		return errors.NewValidationError("order_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("order")
	}

	if err := order.MarkFailed(cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to fail order: %v", err))
	}

	events := order.GetUncommittedEvents()

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish order events: %v\n", err)
	}

	return nil
}

// CancelOrderWithUoWHandler handles order cancellation commands with Unit of Work
type CancelOrderWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewCancelOrderWithUoWHandler creates a new cancel order handler with UoW
func NewCancelOrderWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *CancelOrderWithUoWHandler {
	return &CancelOrderWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the cancel order command
func (h *CancelOrderWithUoWHandler) Handle(ctx context.Context, cmd *CancelOrder) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.OrderID == "" {
		return errors.NewValidationError("order_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("order")
	}

	if err := order.Cancel(cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to cancel order: %v", err))
	}

	events := order.GetUncommittedEvents()

	if err := orderRepo.Save(ctx, order); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save order: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish order events: %v\n", err)
	}

	return nil
}
