package query

import (
	"context"
	"fmt"

	"marketplace-backend/pkg/errors"
)

// ProductProjection interface for the product read model
type ProductProjection interface {
	GetByID(ctx context.Context, id string) (interface{}, error)
	ListApproved(ctx context.Context, offset, limit int) ([]interface{}, error)
	ListByVendor(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]interface{}, error)
}

// GetProductHandler handles get product by ID queries
type GetProductHandler struct {
	projection ProductProjection
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(projection ProductProjection) *GetProductHandler {
	return &GetProductHandler{
		projection: projection,
	}
}

// Handle processes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, productID string) (interface{}, error) {
	if productID == "" {
		return nil, errors.NewValidationError("product_id is required")
	}

	product, err := h.projection.GetByID(ctx, productID)
	if err != nil {
		return nil, errors.NewNotFoundError("product")
	}

	return product, nil
}

// ListProductsHandler handles storefront product listings (approved only)
type ListProductsHandler struct {
	projection ProductProjection
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(projection ProductProjection) *ListProductsHandler {
	return &ListProductsHandler{
		projection: projection,
	}
}

// Handle processes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, offset, limit int) ([]interface{}, error) {
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	products, err := h.projection.ListApproved(ctx, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list products: %v", err))
	}

	return products, nil
}

// ListVendorProductsHandler lists a vendor's own products regardless of status
type ListVendorProductsHandler struct {
	projection ProductProjection
}

// NewListVendorProductsHandler creates a new vendor products handler
func NewListVendorProductsHandler(projection ProductProjection) *ListVendorProductsHandler {
	return &ListVendorProductsHandler{
		projection: projection,
	}
}

// Handle processes the vendor products query
func (h *ListVendorProductsHandler) Handle(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error) {
	if vendorID == "" {
		return nil, errors.NewValidationError("vendor_id is required")
	}
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	products, err := h.projection.ListByVendor(ctx, vendorID, offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list vendor products: %v", err))
	}

	return products, nil
}

// ListPendingProductsHandler lists products awaiting moderation (admin)
type ListPendingProductsHandler struct {
	projection ProductProjection
}

// NewListPendingProductsHandler creates a new pending products handler
func NewListPendingProductsHandler(projection ProductProjection) *ListPendingProductsHandler {
	return &ListPendingProductsHandler{
		projection: projection,
	}
}

// Handle processes the pending products query
func (h *ListPendingProductsHandler) Handle(ctx context.Context, offset, limit int) ([]interface{}, error) {
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	products, err := h.projection.ListByStatus(ctx, "PENDING", offset, limit)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("failed to list pending products: %v", err))
	}

	return products, nil
}
