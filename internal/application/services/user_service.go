package services

import (
	"context"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/query"
)

// UserService handles account operations
type UserService struct {
	registerUserHandler   *command.RegisterUserWithUoWHandler
	loginUserHandler      *command.LoginUserHandler
	updateProfileHandler  *command.UpdateUserProfileWithUoWHandler
	changePasswordHandler *command.ChangeUserPasswordWithUoWHandler
	promoteUserHandler    *command.PromoteUserWithUoWHandler
	deleteUserHandler     *command.DeleteUserWithUoWHandler
	getUserHandler        *query.GetUserHandler
	listUsersHandler      *query.ListUsersHandler
}

// NewUserService creates a new user service
func NewUserService(
	registerUserHandler *command.RegisterUserWithUoWHandler,
	loginUserHandler *command.LoginUserHandler,
	updateProfileHandler *command.UpdateUserProfileWithUoWHandler,
	changePasswordHandler *command.ChangeUserPasswordWithUoWHandler,
	promoteUserHandler *command.PromoteUserWithUoWHandler,
	deleteUserHandler *command.DeleteUserWithUoWHandler,
	getUserHandler *query.GetUserHandler,
	listUsersHandler *query.ListUsersHandler,
) *UserService {
	return &UserService{
		registerUserHandler:   registerUserHandler,
		loginUserHandler:      loginUserHandler,
		updateProfileHandler:  updateProfileHandler,
		changePasswordHandler: changePasswordHandler,
		promoteUserHandler:    promoteUserHandler,
		deleteUserHandler:     deleteUserHandler,
		getUserHandler:        getUserHandler,
		listUsersHandler:      listUsersHandler,
	}
}

// RegisterUser creates a new account and returns its ID
func (s *UserService) RegisterUser(ctx context.Context, cmd *command.RegisterUser) (string, error) {
	return s.registerUserHandler.Handle(ctx, cmd)
}

// Login verifies credentials and issues a token
func (s *UserService) Login(ctx context.Context, cmd *command.LoginUser) (*command.LoginResult, error) {
	return s.loginUserHandler.Handle(ctx, cmd)
}

// UpdateProfile updates an account's name and email
func (s *UserService) UpdateProfile(ctx context.Context, cmd *command.UpdateUserProfile) error {
	return s.updateProfileHandler.Handle(ctx, cmd)
}

// ChangePassword rotates an account's password
func (s *UserService) ChangePassword(ctx context.Context, cmd *command.ChangeUserPassword) error {
	return s.changePasswordHandler.Handle(ctx, cmd)
}

// PromoteUser changes an account's role
func (s *UserService) PromoteUser(ctx context.Context, cmd *command.PromoteUser) error {
	return s.promoteUserHandler.Handle(ctx, cmd)
}

// DeleteUser soft deletes an account
func (s *UserService) DeleteUser(ctx context.Context, cmd *command.DeleteUser) error {
	return s.deleteUserHandler.Handle(ctx, cmd)
}

// GetUser retrieves an account by ID
func (s *UserService) GetUser(ctx context.Context, userID string) (interface{}, error) {
	return s.getUserHandler.Handle(ctx, userID)
}

// ListUsers retrieves accounts with pagination
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return s.listUsersHandler.Handle(ctx, offset, limit)
}
