package command

import (
	"context"

	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/pkg/errors"
	"marketplace-backend/pkg/jwt"
)

// LoginResult carries the issued token and the authenticated user's identity
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// LoginUserHandler verifies credentials and issues a JWT
type LoginUserHandler struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.JWTManager
}

// NewLoginUserHandler creates a new login handler
func NewLoginUserHandler(userRepo repository.UserRepository, jwtManager *jwt.JWTManager) *LoginUserHandler {
	return &LoginUserHandler{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Handle processes the login command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd *LoginUser) (*LoginResult, error) {
	if cmd == nil {
		return nil, errors.NewValidationError("command cannot be nil")
	}
	if cmd.Email == "" {
		return nil, errors.NewValidationError("email is required")
	}
	if cmd.Password == "" {
		return nil, errors.NewValidationError("password is required")
	}

	user, err := h.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		// Same response for unknown email and bad password
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	if !user.VerifyPassword(cmd.Password) {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	token, err := h.jwtManager.GenerateToken(user.ID(), user.Email(), user.Name(), string(user.Role()))
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token")
	}

	return &LoginResult{
		Token:  token,
		UserID: user.ID(),
		Name:   user.Name(),
		Email:  user.Email(),
		Role:   string(user.Role()),
	}, nil
}
