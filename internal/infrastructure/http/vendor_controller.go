package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"

	"github.com/go-chi/chi/v5"
)

// VendorController handles HTTP requests for vendor operations
type VendorController struct {
	service *services.VendorService
}

// NewVendorController creates a new vendor controller
func NewVendorController(service *services.VendorService) *VendorController {
	return &VendorController{
		service: service,
	}
}

// RegisterVendor handles POST /vendors. The authenticated user applies to
// open a store; the application starts in PENDING until an admin reviews it.
func (c *VendorController) RegisterVendor(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == "" {
		response.SendUnauthorized(w, r, "User not authenticated")
		return
	}

	var cmd command.RegisterVendor
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}
	cmd.OwnerID = ownerID

	vendorID, err := c.service.RegisterVendor(r.Context(), &cmd)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]string{
		"vendor_id": vendorID,
		"status":    "PENDING",
		"message":   "Vendor application submitted",
	})
}

// GetVendor handles GET /vendors/{id}
func (c *VendorController) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")
	if vendorID == "" {
		response.SendBadRequest(w, r, "Vendor ID is required")
		return
	}

	vendor, err := c.service.GetVendor(r.Context(), vendorID)
	if err != nil {
		response.SendNotFound(w, r, "Vendor not found")
		return
	}

	response.SendSuccess(w, r, vendor)
}

// ListVendors handles GET /vendors with an optional status filter
func (c *VendorController) ListVendors(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := r.URL.Query().Get("status")

	vendors, err := c.service.ListVendors(r.Context(), status, offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list vendors")
		return
	}

	response.SendSuccess(w, r, vendors)
}

// ApproveVendor handles POST /vendors/{id}/approve (Admin only)
func (c *VendorController) ApproveVendor(w http.ResponseWriter, r *http.Request) {
	cmd := &command.ApproveVendor{
		VendorID:   chi.URLParam(r, "id"),
		ApprovedBy: middleware.GetUserID(r.Context()),
	}

	if err := c.service.ApproveVendor(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Vendor approved successfully"})
}

// RejectVendor handles POST /vendors/{id}/reject (Admin only)
func (c *VendorController) RejectVendor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	cmd := &command.RejectVendor{
		VendorID: chi.URLParam(r, "id"),
		Reason:   req.Reason,
	}

	if err := c.service.RejectVendor(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Vendor rejected"})
}

// SuspendVendor handles POST /vendors/{id}/suspend (Admin only)
func (c *VendorController) SuspendVendor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	cmd := &command.SuspendVendor{
		VendorID: chi.URLParam(r, "id"),
		Reason:   req.Reason,
	}

	if err := c.service.SuspendVendor(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Vendor suspended"})
}

// UpdateVendor handles PUT /vendors/{id}
func (c *VendorController) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")
	if vendorID == "" {
		response.SendBadRequest(w, r, "Vendor ID is required")
		return
	}

	var cmd command.UpdateVendorProfile
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}
	cmd.VendorID = vendorID

	if err := c.service.UpdateVendor(r.Context(), &cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Vendor updated successfully"})
}
