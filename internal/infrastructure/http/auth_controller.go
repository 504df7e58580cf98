package http

import (
	"encoding/json"
	"net/http"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/internal/domain/aggregate"
	jwtutil "marketplace-backend/pkg/jwt"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"
)

// AuthController handles HTTP requests for authentication
type AuthController struct {
	userService *services.UserService
	jwtManager  *jwtutil.JWTManager
}

// NewAuthController creates a new auth controller
func NewAuthController(userService *services.UserService, jwtManager *jwtutil.JWTManager) *AuthController {
	return &AuthController{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Register handles POST /auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		response.SendBadRequest(w, r, "Email, password, and name are required")
		return
	}
	if len(req.Password) < 6 {
		response.SendBadRequest(w, r, "Password must be at least 6 characters")
		return
	}

	cmd := &command.RegisterUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	userID, err := c.userService.RegisterUser(r.Context(), cmd)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	token, err := c.jwtManager.GenerateToken(userID, req.Email, req.Name, string(aggregate.RoleUser))
	if err != nil {
		response.SendInternalError(w, r, "Failed to generate token")
		return
	}

	response.SendCreated(w, r, map[string]interface{}{
		"user_id": userID,
		"email":   req.Email,
		"name":    req.Name,
		"role":    string(aggregate.RoleUser),
		"token":   token,
	})
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var cmd command.LoginUser
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	if cmd.Email == "" || cmd.Password == "" {
		response.SendBadRequest(w, r, "Email and password are required")
		return
	}

	result, err := c.userService.Login(r.Context(), &cmd)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, result)
}

// GetCurrentUser handles GET /auth/me
func (c *AuthController) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.SendUnauthorized(w, r, "User not authenticated")
		return
	}

	user, err := c.userService.GetUser(r.Context(), userID)
	if err != nil {
		response.SendNotFound(w, r, "User not found")
		return
	}

	response.SendSuccess(w, r, user)
}

// ChangePassword handles POST /auth/change-password
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.SendUnauthorized(w, r, "User not authenticated")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		response.SendBadRequest(w, r, "Current and new passwords are required")
		return
	}
	if len(req.NewPassword) < 6 {
		response.SendBadRequest(w, r, "New password must be at least 6 characters")
		return
	}

	cmd := &command.ChangeUserPassword{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

	if err := c.userService.ChangePassword(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Password changed successfully"})
}
