package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/internal/domain/aggregate"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"

	"github.com/go-chi/chi/v5"
)

// UserController handles HTTP requests for user operations
type UserController struct {
	service *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(service *services.UserService) *UserController {
	return &UserController{
		service: service,
	}
}

// GetUser handles GET /users/{id}
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		response.SendBadRequest(w, r, "User ID is required")
		return
	}

	user, err := c.service.GetUser(r.Context(), userID)
	if err != nil {
		response.SendNotFound(w, r, "User not found")
		return
	}

	response.SendSuccess(w, r, user)
}

// ListUsers handles GET /users (Admin only)
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := c.service.ListUsers(r.Context(), offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list users")
		return
	}

	response.SendSuccess(w, r, users)
}

// UpdateProfile handles PUT /users/me
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.SendUnauthorized(w, r, "User not authenticated")
		return
	}

	var cmd command.UpdateUserProfile
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}
	cmd.UserID = userID

	if err := c.service.UpdateProfile(r.Context(), &cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Profile updated successfully"})
}

// PromoteUser handles PUT /users/{id}/role (Admin only)
func (c *UserController) PromoteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	role := aggregate.UserRole(req.Role)
	if !role.IsValid() {
		response.SendBadRequest(w, r, "Invalid role. Must be: Admin, Vendor, or User")
		return
	}

	cmd := &command.PromoteUser{
		UserID: userID,
		Role:   role,
	}

	if err := c.service.PromoteUser(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "User role updated successfully"})
}

// DeleteUser handles DELETE /users/{id} (Admin only)
func (c *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		response.SendBadRequest(w, r, "User ID is required")
		return
	}

	if userID == middleware.GetUserID(r.Context()) {
		response.SendBadRequest(w, r, "Cannot delete your own account")
		return
	}

	cmd := &command.DeleteUser{UserID: userID}
	if err := c.service.DeleteUser(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "User deleted successfully"})
}
