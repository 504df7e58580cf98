package services

import (
	"context"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/query"
)

// VendorService handles vendor onboarding and back office moderation
type VendorService struct {
	registerVendorHandler *command.RegisterVendorWithUoWHandler
	approveVendorHandler  *command.ApproveVendorWithUoWHandler
	rejectVendorHandler   *command.RejectVendorWithUoWHandler
	suspendVendorHandler  *command.SuspendVendorWithUoWHandler
	updateVendorHandler   *command.UpdateVendorProfileWithUoWHandler
	getVendorHandler      *query.GetVendorHandler
	listVendorsHandler    *query.ListVendorsHandler
}

// NewVendorService creates a new vendor service
func NewVendorService(
	registerVendorHandler *command.RegisterVendorWithUoWHandler,
	approveVendorHandler *command.ApproveVendorWithUoWHandler,
	rejectVendorHandler *command.RejectVendorWithUoWHandler,
	suspendVendorHandler *command.SuspendVendorWithUoWHandler,
	updateVendorHandler *command.UpdateVendorProfileWithUoWHandler,
	getVendorHandler *query.GetVendorHandler,
	listVendorsHandler *query.ListVendorsHandler,
) *VendorService {
	return &VendorService{
		registerVendorHandler: registerVendorHandler,
		approveVendorHandler:  approveVendorHandler,
		rejectVendorHandler:   rejectVendorHandler,
		suspendVendorHandler:  suspendVendorHandler,
		updateVendorHandler:   updateVendorHandler,
		getVendorHandler:      getVendorHandler,
		listVendorsHandler:    listVendorsHandler,
	}
}

// RegisterVendor submits a store application and returns the vendor ID
func (s *VendorService) RegisterVendor(ctx context.Context, cmd *command.RegisterVendor) (string, error) {
	return s.registerVendorHandler.Handle(ctx, cmd)
}

// ApproveVendor approves a pending store application
func (s *VendorService) ApproveVendor(ctx context.Context, cmd *command.ApproveVendor) error {
	return s.approveVendorHandler.Handle(ctx, cmd)
}

// RejectVendor rejects a pending store application
func (s *VendorService) RejectVendor(ctx context.Context, cmd *command.RejectVendor) error {
	return s.rejectVendorHandler.Handle(ctx, cmd)
}

// SuspendVendor suspends an approved store
func (s *VendorService) SuspendVendor(ctx context.Context, cmd *command.SuspendVendor) error {
	return s.suspendVendorHandler.Handle(ctx, cmd)
}

// UpdateVendor updates a store's profile
func (s *VendorService) UpdateVendor(ctx context.Context, cmd *command.UpdateVendorProfile) error {
	return s.updateVendorHandler.Handle(ctx, cmd)
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, vendorID string) (interface{}, error) {
	return s.getVendorHandler.Handle(ctx, vendorID)
}

// ListVendors retrieves vendors with optional status filtering
func (s *VendorService) ListVendors(ctx context.Context, status string, offset, limit int) ([]interface{}, error) {
	return s.listVendorsHandler.Handle(ctx, status, offset, limit)
}
