package query

import (
	"context"
	"fmt"

	"marketplace-backend/pkg/errors"
)

// UserProjection interface for the user read model
type UserProjection interface {
	GetByID(ctx context.Context, id string) (interface{}, error)
	ListAll(ctx context.Context, offset, limit int) ([]interface{}, error)
}

// GetUserHandler handles get user by ID queries
type GetUserHandler struct {
	projection UserProjection
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(projection UserProjection) *GetUserHandler {
	return &GetUserHandler{
		projection: projection,
	}
}

// Handle processes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, userID string) (interface{}, error) {
	if userID == "" {
		return nil, errors.NewValidationError("user_id is required")
	}

	user, err := h.projection.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewNotFoundError("user")
	}

	return user, nil
}

// ListUsersHandler handles list users queries (admin)
type ListUsersHandler struct {
	projection UserProjection
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(projection UserProjection) *ListUsersHandler {
	return &ListUsersHandler{
		projection: projection,
	}
}

// Handle processes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, offset, limit int) ([]interface{}, error) {
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	users, err := h.projection.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list users: %v", err))
	}

	return users, nil
}
