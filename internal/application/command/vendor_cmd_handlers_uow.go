package command

import (
	"context"
	"fmt"

	"marketplace-backend/internal/domain/aggregate"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/internal/infrastructure/bus"
	"marketplace-backend/pkg/errors"
)

// RegisterVendorWithUoWHandler handles vendor registration commands with Unit of Work
type RegisterVendorWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewRegisterVendorWithUoWHandler creates a new register vendor handler with UoW
func NewRegisterVendorWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *RegisterVendorWithUoWHandler {
	return &RegisterVendorWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the register vendor command
func (h *RegisterVendorWithUoWHandler) Handle(ctx context.Context, cmd *RegisterVendor) (string, error) {
	if cmd == nil {
		return "", errors.NewValidationError("command cannot be nil")
	}
	if cmd.OwnerID == "" {
		return "", errors.NewValidationError("owner_id is required")
	}
	if cmd.StoreName == "" {
		return "", errors.NewValidationError("store_name is required")
	}
	if cmd.Email == "" {
		return "", errors.NewValidationError("email is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	// The owning account must exist
	userRepo := uow.UserRepository()
	if _, err := userRepo.GetByID(ctx, cmd.OwnerID); err != nil {
		uow.Rollback(ctx)
		return "", errors.NewNotFoundError("user")
	}

	// One store per account
	vendorRepo := uow.VendorRepository()
	if existing, err := vendorRepo.GetByOwnerID(ctx, cmd.OwnerID); err == nil && existing != nil {
		uow.Rollback(ctx)
		return "", errors.NewConflictError("account already owns a store")
	}

	vendor, err := aggregate.NewVendor(cmd.OwnerID, cmd.StoreName, cmd.Email)
	if err != nil {
		uow.Rollback(ctx)
		return "", errors.NewValidationError(fmt.Sprintf("failed to register vendor: %v", err))
	}

	// Get events BEFORE saving (Save() will clear them)
	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return "", errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	// Publish events AFTER successful commit (eventual consistency)
	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish vendor events: %v\n", err)
	}

	return vendor.ID(), nil
}

// ApproveVendorWithUoWHandler handles vendor approval commands with Unit of Work.
// Approval also promotes the owner account to the vendor role and opens the
// vendor's wallet so sales can be credited immediately.
type ApproveVendorWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewApproveVendorWithUoWHandler creates a new approve vendor handler with UoW
func NewApproveVendorWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *ApproveVendorWithUoWHandler {
	return &ApproveVendorWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the approve vendor command
func (h *ApproveVendorWithUoWHandler) Handle(ctx context.Context, cmd *ApproveVendor) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return errors.NewValidationError("vendor_id is required")
	}
	if cmd.ApprovedBy == "" {
		return errors.NewValidationError("approved_by is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("vendor")
	}

	if err := vendor.Approve(cmd.ApprovedBy); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to approve vendor: %v", err))
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	// Promote the owner account to vendor role
	userRepo := uow.UserRepository()
	if owner, err := userRepo.GetByID(ctx, vendor.OwnerID()); err == nil {
		if owner.Role() == aggregate.RoleUser {
			if err := owner.PromoteToRole(aggregate.RoleVendor); err != nil {
				uow.Rollback(ctx)
				return errors.NewInternalError(fmt.Sprintf("failed to promote owner: %v", err))
			}
			events = append(events, owner.GetUncommittedEvents()...)
			if err := userRepo.Save(ctx, owner); err != nil {
				uow.Rollback(ctx)
				return errors.NewInternalError(fmt.Sprintf("failed to save owner: %v", err))
			}
		}
	}

	// Open the vendor's wallet if it does not exist yet
	walletRepo := uow.WalletRepository()
	if _, err := walletRepo.GetByVendorID(ctx, vendor.ID()); err != nil {
		wallet, err := aggregate.NewWallet(vendor.ID())
		if err != nil {
			uow.Rollback(ctx)
			return errors.NewInternalError(fmt.Sprintf("failed to open wallet: %v", err))
		}
		events = append(events, wallet.GetUncommittedEvents()...)
		if err := walletRepo.Save(ctx, wallet); err != nil {
			uow.Rollback(ctx)
			return errors.NewInternalError(fmt.Sprintf("failed to save wallet: %v", err))
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish vendor events: %v\n", err)
	}

	return nil
}

// RejectVendorWithUoWHandler handles vendor rejection commands with Unit of Work
type RejectVendorWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewRejectVendorWithUoWHandler creates a new reject vendor handler with UoW
func NewRejectVendorWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *RejectVendorWithUoWHandler {
	return &RejectVendorWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the reject vendor command
func (h *RejectVendorWithUoWHandler) Handle(ctx context.Context, cmd *RejectVendor) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return errors.NewValidationError("vendor_id is required")
	}
	if cmd.Reason == "" {
		return errors.NewValidationError("reason is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("vendor")
	}

	if err := vendor.Reject(cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to reject vendor: %v", err))
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish vendor events: %v\n", err)
	}

	return nil
}

// SuspendVendorWithUoWHandler handles vendor suspension commands with Unit of Work
type SuspendVendorWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewSuspendVendorWithUoWHandler creates a new suspend vendor handler with UoW
func NewSuspendVendorWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *SuspendVendorWithUoWHandler {
	return &SuspendVendorWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the suspend vendor command
func (h *SuspendVendorWithUoWHandler) Handle(ctx context.Context, cmd *SuspendVendor) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return errors.NewValidationError("vendor_id is required")
	}
	if cmd.Reason == "" {
		return errors.NewValidationError("reason is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("vendor")
	}

	if err := vendor.Suspend(cmd.Reason); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to suspend vendor: %v", err))
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish vendor events: %v\n", err)
	}

	return nil
}

// UpdateVendorProfileWithUoWHandler handles vendor profile updates with Unit of Work
type UpdateVendorProfileWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewUpdateVendorProfileWithUoWHandler creates a new update vendor handler with UoW
func NewUpdateVendorProfileWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *UpdateVendorProfileWithUoWHandler {
	return &UpdateVendorProfileWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the update vendor profile command
func (h *UpdateVendorProfileWithUoWHandler) Handle(ctx context.Context, cmd *UpdateVendorProfile) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.VendorID == "" {
		return errors.NewValidationError("vendor_id is required")
	}
	if cmd.StoreName == "" {
		return errors.NewValidationError("store_name is required")
	}
	if cmd.Email == "" {
		return errors.NewValidationError("email is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	vendorRepo := uow.VendorRepository()
	vendor, err := vendorRepo.GetByID(ctx, cmd.VendorID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("vendor")
	}

	if err := vendor.UpdateProfile(cmd.StoreName, cmd.Email); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to update vendor: %v", err))
	}

	events := vendor.GetUncommittedEvents()

	if err := vendorRepo.Save(ctx, vendor); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save vendor: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish vendor events: %v\n", err)
	}

	return nil
}
