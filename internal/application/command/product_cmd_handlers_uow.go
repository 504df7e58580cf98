package command

import (
	"context"
	"fmt"

	"marketplace-backend/internal/domain/aggregate"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/internal/infrastructure/bus"
	"marketplace-backend/pkg/errors"
)

// SubmitProductWithUoWHandler handles product submission commands with Unit of Work
type SubmitProductWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewSubmitProductWithUoWHandler creates a new submit product handler with UoW
func NewSubmitProductWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *SubmitProductWithUoWHandler {
	return &SubmitProductWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the submit product command
func (h *SubmitProductWithUoWHandler) Handle(ctx context.Context, cmd *SubmitProduct) (string, error) {
	if cmd == nil {
		return "", errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return "", errors.NewValidationError("vendor_id is required")
	}
	if cmd.Name == "" {
		return "", errors.NewValidationError("name is required")
	}
	if cmd.Price <= 0 {
		return "", errors.NewValidationError("price must be positive")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	// Only approved vendors can list products
	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return "", errors.NewNotFoundError("vendor")
	}
	if vendor.Status() != aggregate.VendorStatusApproved {
		uow.Rollback(ctx)
		return "", errors.NewForbiddenError("vendor is not approved")
	}

	product, err := aggregate.NewProduct(cmd.VendorID, cmd.Name, cmd.Description, cmd.Price)
	if err != nil {
		uow.Rollback(ctx)
		return "", errors.NewValidationError(fmt.Sprintf("failed to create product: %v", err))
	}

	// Get events BEFORE saving (Save() will clear them)
	events := product.GetUncommittedEvents()

	productRepo := uow.ProductRepository()
	if err := productRepo.Save(ctx, product); err != nil {
		uow.Rollback(ctx)
		return "", errors.NewInternalError(fmt.Sprintf("failed to save product: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	// Publish events AFTER successful commit (eventual consistency)
	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish product events: %v\n", err)
	}

	return product.ID(), nil
}

// ApproveProductWithUoWHandler handles product approval commands with Unit of Work
type ApproveProductWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewApproveProductWithUoWHandler creates a new approve product handler with UoW
func NewApproveProductWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *ApproveProductWithUoWHandler {
	return &ApproveProductWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the approve product command
func (h *ApproveProductWithUoWHandler) Handle(ctx context.Context, cmd *ApproveProduct) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.ProductID == "" {
		return errors.NewValidationError("product_id is required")
	}
	if cmd.ApprovedBy == "" {
		return errors.NewValidationError("approved_by is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	productRepo := uow.ProductRepository()
	product, err := productRepo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("product")
	}

	if err := product.Approve(cmd.ApprovedBy); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to approve product: %v", err))
	}

	events := product.GetUncommittedEvents()

	if err := productRepo.Save(ctx, product); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save product: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish product events: %v\n", err)
	}

	return nil
}

// RejectProductWithUoWHandler handles product rejection commands with Unit of Work
type RejectProductWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewRejectProductWithUoWHandler creates a new reject product handler with UoW
func NewRejectProductWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *RejectProductWithUoWHandler {
	return &RejectProductWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the reject product command
func (h *RejectProductWithUoWHandler) Handle(ctx context.Context, cmd *RejectProduct) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.ProductID == "" {
		return errors.NewValidationError("product_id is required")
	}
	if cmd.Reason == "" {
		return errors.NewValidationError("reason is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	productRepo := uow.ProductRepository()
	product, err := productRepo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("product")
	}

	if err := product.Reject(cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to reject product: %v", err))
	}

	events := product.GetUncommittedEvents()

	if err := productRepo.Save(ctx, product); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save product: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish product events: %v\n", err)
	}

	return nil
}

// UpdateProductWithUoWHandler handles product update commands with Unit of Work
type UpdateProductWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewUpdateProductWithUoWHandler creates a new update product handler with UoW
func NewUpdateProductWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *UpdateProductWithUoWHandler {
	return &UpdateProductWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the update product command
func (h *UpdateProductWithUoWHandler) Handle(ctx context.Context, cmd *UpdateProduct) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.ProductID == "" {
		return errors.NewValidationError("product_id is required")
	}
	if cmd.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if cmd.Price <= 0 {
		return errors.NewValidationError("price must be positive")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	productRepo := uow.ProductRepository()
	product, err := productRepo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("product")
	}

	if err := product.Update(cmd.Name, cmd.Description, cmd.Price); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to update product: %v", err))
	}

	events := product.GetUncommittedEvents()

	if err := productRepo.Save(ctx, product); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save product: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish product events: %v\n", err)
	}

	return nil
}

// SetProductImageWithUoWHandler handles product image updates with Unit of Work
type SetProductImageWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewSetProductImageWithUoWHandler creates a new set product image handler with UoW
func NewSetProductImageWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *SetProductImageWithUoWHandler {
	return &SetProductImageWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the set product image command
func (h *SetProductImageWithUoWHandler) Handle(ctx context.Context, cmd *SetProductImage) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.ProductID == "" {
		return errors.NewValidationError("product_id is required")
	}
	if cmd.ImageURL == "" {
		return errors.NewValidationError("image_url is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	productRepo := uow.ProductRepository()
	product, err := productRepo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("product")
	}

	if err := product.SetImage(cmd.ImageURL); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to set product image: %v", err))
	}

	events := product.GetUncommittedEvents()

	if err := productRepo.Save(ctx, product); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save product: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish product events: %v\n", err)
	}

	return nil
}
