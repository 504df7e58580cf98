package command

import (
	"context"
	"fmt"

	"marketplace-backend/internal/domain/aggregate"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/internal/infrastructure/bus"
	"marketplace-backend/pkg/errors"
)

// RegisterUserWithUoWHandler handles register user commands with Unit of Work
type RegisterUserWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewRegisterUserWithUoWHandler creates a new register user handler with UoW
func NewRegisterUserWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *RegisterUserWithUoWHandler {
	return &RegisterUserWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the register user command
func (h *RegisterUserWithUoWHandler) Handle(ctx context.Context, cmd *RegisterUser) (string, error) {
	if cmd == nil {
		return "", errors.NewValidationError("command cannot be nil")
	}
	if cmd.Name == "" {
		return "", errors.NewValidationError("name is required")
	}
	if cmd.Email == "" {
		return "", errors.NewValidationError("email is required")
	}
	if cmd.Password == "" {
		return "", errors.NewValidationError("password is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	userRepo := uow.UserRepository()

	// Emails are unique across accounts
	if existing, err := userRepo.GetByEmail(ctx, cmd.Email); err == nil && existing != nil {
		uow.Rollback(ctx)
		return "", errors.NewConflictError("email is already registered")
	}

	user, err := aggregate.NewUser(cmd.Name, cmd.Email, cmd.Password, aggregate.RoleUser)
	if err != nil {
		uow.Rollback(ctx)
		return "", errors.NewValidationError(fmt.Sprintf("failed to create user: %v", err))
	}

	// Get events BEFORE saving (Save() will clear them)
	events := user.GetUncommittedEvents()

	if err := userRepo.Save(ctx, user); err != nil {
		uow.Rollback(ctx)
		return "", errors.NewInternalError(fmt.Sprintf("failed to save user: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	// Publish events AFTER successful commit (eventual consistency)
	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish user events: %v\n", err)
	}

	return user.ID(), nil
}

// UpdateUserProfileWithUoWHandler handles update profile commands with Unit of Work
type UpdateUserProfileWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewUpdateUserProfileWithUoWHandler creates a new update profile handler with UoW
func NewUpdateUserProfileWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *UpdateUserProfileWithUoWHandler {
	return &UpdateUserProfileWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the update profile command
func (h *UpdateUserProfileWithUoWHandler) Handle(ctx context.Context, cmd *UpdateUserProfile) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.UserID == "" {
		return errors.NewValidationError("user_id is required")
	}
	if cmd.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if cmd.Email == "" {
		return errors.NewValidationError("email is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	userRepo := uow.UserRepository()
	user, err := userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("user")
	}

	if err := user.UpdateProfile(cmd.Name, cmd.Email); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to update user: %v", err))
	}

	events := user.GetUncommittedEvents()

	if err := userRepo.Save(ctx, user); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save user: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish user events: %v\n", err)
	}

	return nil
}

// ChangeUserPasswordWithUoWHandler handles password change commands with Unit of Work
type ChangeUserPasswordWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewChangeUserPasswordWithUoWHandler creates a new change password handler with UoW
func NewChangeUserPasswordWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *ChangeUserPasswordWithUoWHandler {
	return &ChangeUserPasswordWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the change password command
func (h *ChangeUserPasswordWithUoWHandler) Handle(ctx context.Context, cmd *ChangeUserPassword) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.UserID == "" {
		return errors.NewValidationError("user_id is required")
	}
	if cmd.CurrentPassword == "" {
		return errors.NewValidationError("current_password is required")
	}
	if cmd.NewPassword == "" {
		return errors.NewValidationError("new_password is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	userRepo := uow.UserRepository()
	user, err := userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("user")
	}

	if !user.VerifyPassword(cmd.CurrentPassword) {
		uow.Rollback(ctx)
		return errors.NewUnauthorizedError("current password is incorrect")
	}

	if err := user.ChangePassword(cmd.NewPassword); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to change password: %v", err))
	}

	events := user.GetUncommittedEvents()

	if err := userRepo.Save(ctx, user); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save user: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish user events: %v\n", err)
	}

	return nil
}

// PromoteUserWithUoWHandler handles role promotion commands with Unit of Work
type PromoteUserWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewPromoteUserWithUoWHandler creates a new promote user handler with UoW
func NewPromoteUserWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *PromoteUserWithUoWHandler {
	return &PromoteUserWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the promote user command
func (h *PromoteUserWithUoWHandler) Handle(ctx context.Context, cmd *PromoteUser) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.UserID == "" {
		return errors.NewValidationError("user_id is required")
	}
	if !cmd.Role.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid role: %s", cmd.Role))
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	userRepo := uow.UserRepository()
	user, err := userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("user")
	}

	if err := user.PromoteToRole(cmd.Role); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to promote user: %v", err))
	}

	events := user.GetUncommittedEvents()

	if err := userRepo.Save(ctx, user); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save user: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish user events: %v\n", err)
	}

	return nil
}

// DeleteUserWithUoWHandler handles delete user commands with Unit of Work
type DeleteUserWithUoWHandler struct {
	uowFactory repository.UnitOfWorkFactory
	eventBus   bus.EventBus
}

// NewDeleteUserWithUoWHandler creates a new delete user handler with UoW
func NewDeleteUserWithUoWHandler(
	uowFactory repository.UnitOfWorkFactory,
	eventBus bus.EventBus,
) *DeleteUserWithUoWHandler {
	return &DeleteUserWithUoWHandler{
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

// Handle processes the delete user command
func (h *DeleteUserWithUoWHandler) Handle(ctx context.Context, cmd *DeleteUser) error {
	if cmd == nil {
		return errors.NewValidationError("command cannot be nil")
	}
	if cmd.UserID == "" {
		return errors.NewValidationError("user_id is required")
	}

	uow := h.uowFactory.CreateUnitOfWork()
	defer uow.Close()

	if err := uow.Begin(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to begin transaction: %v", err))
	}

	userRepo := uow.UserRepository()
	user, err := userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uow.Rollback(ctx)
		return errors.NewNotFoundError("user")
	}

	if err := user.Delete(); err != nil {
		uow.Rollback(ctx)
		return errors.NewValidationError(fmt.Sprintf("failed to delete user: %v", err))
	}

	events := user.GetUncommittedEvents()

	if err := userRepo.Save(ctx, user); err != nil {
		uow.Rollback(ctx)
		return errors.NewInternalError(fmt.Sprintf("failed to save user: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to commit transaction: %v", err))
	}

	if err := h.eventBus.PublishBatch(ctx, events); err != nil {
		fmt.Printf("Warning: failed to publish user events: %v\n", err)
	}

	return nil
}
