package query

import (
	"context"
	"fmt"

	"marketplace-backend/pkg/errors"
)

// VendorProjection interface for the vendor read model
type VendorProjection interface {
	GetByID(ctx context.Context, id string) (interface{}, error)
	ListAll(ctx context.Context, offset, limit int) ([]interface{}, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]interface{}, error)
}

// GetVendorHandler handles get vendor by ID queries
type GetVendorHandler struct {
	projection VendorProjection
}

// NewGetVendorHandler creates a new get vendor handler
func NewGetVendorHandler(projection VendorProjection) *GetVendorHandler {
	return &GetVendorHandler{
		projection: projection,
	}
}

// Handle processes the get vendor query
func (h *GetVendorHandler) Handle(ctx context.Context, vendorID string) (interface{}, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor_id is required")
	}

	vendor, err := h.projection.GetByID(ctx, vendorID)
	if err != nil {
		return nil, errors.NewNotFoundError("vendor")
	}

	return vendor, nil
}

// ListVendorsHandler handles list vendors queries
type ListVendorsHandler struct {
	projection VendorProjection
}

// NewListVendorsHandler creates a new list vendors handler
func NewListVendorsHandler(projection VendorProjection) *ListVendorsHandler {
	return &ListVendorsHandler{
		projection: projection,
	}
}

// Handle processes the list vendors query; status filters by approval status
// when non-empty
func (h *ListVendorsHandler) Handle(ctx context.Context, status string, offset, limit int) ([]interface{}, error) {
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var (
		vendors []interface{}
		err     error
	)
	if status != "" {
		vendors, err = h.projection.ListByStatus(ctx, status, offset, limit)
	} else {
		vendors, err = h.projection.ListAll(ctx, offset, limit)
	}
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list vendors: %v", err))
	}

	return vendors, nil
}
