package services

import (
	"context"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/query"
)

// ProductService handles catalog operations and moderation
type ProductService struct {
	submitProductHandler       *command.SubmitProductWithUoWHandler
	approveProductHandler      *command.ApproveProductWithUoWHandler
	rejectProductHandler       *command.RejectProductWithUoWHandler
	updateProductHandler       *command.UpdateProductWithUoWHandler
	setProductImageHandler     *command.SetProductImageWithUoWHandler
	getProductHandler          *query.GetProductHandler
	listProductsHandler        *query.ListProductsHandler
	listVendorProductsHandler  *query.ListVendorProductsHandler
	listPendingProductsHandler *query.ListPendingProductsHandler
}

// NewProductService creates a new product service
func NewProductService(
	submitProductHandler *command.SubmitProductWithUoWHandler,
	approveProductHandler *command.ApproveProductWithUoWHandler,
	rejectProductHandler *command.RejectProductWithUoWHandler,
	updateProductHandler *command.UpdateProductWithUoWHandler,
	setProductImageHandler *command.SetProductImageWithUoWHandler,
	getProductHandler *query.GetProductHandler,
	listProductsHandler *query.ListProductsHandler,
	listVendorProductsHandler *query.ListVendorProductsHandler,
	listPendingProductsHandler *query.ListPendingProductsHandler,
) *ProductService {
	return &ProductService{
		submitProductHandler:       submitProductHandler,
		approveProductHandler:      approveProductHandler,
		rejectProductHandler:       rejectProductHandler,
		updateProductHandler:       updateProductHandler,
		setProductImageHandler:     setProductImageHandler,
		getProductHandler:          getProductHandler,
		listProductsHandler:        listProductsHandler,
		listVendorProductsHandler:  listVendorProductsHandler,
		listPendingProductsHandler: listPendingProductsHandler,
	}
}

// SubmitProduct lists a new product for moderation and returns its ID
func (s *ProductService) SubmitProduct(ctx context.Context, cmd *command.SubmitProduct) (string, error) {
	return s.submitProductHandler.Handle(ctx, cmd)
}

// ApproveProduct publishes a pending product to the storefront
func (s *ProductService) ApproveProduct(ctx context.Context, cmd *command.ApproveProduct) error {
	return s.approveProductHandler.Handle(ctx, cmd)
}

// RejectProduct rejects a pending product
func (s *ProductService) RejectProduct(ctx context.Context, cmd *command.RejectProduct) error {
	return s.rejectProductHandler.Handle(ctx, cmd)
}

// UpdateProduct updates a product's listing details
func (s *ProductService) UpdateProduct(ctx context.Context, cmd *command.UpdateProduct) error {
	return s.updateProductHandler.Handle(ctx, cmd)
}

// SetProductImage attaches an uploaded image to a product
func (s *ProductService) SetProductImage(ctx context.Context, cmd *command.SetProductImage) error {
	return s.setProductImageHandler.Handle(ctx, cmd)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, productID string) (interface{}, error) {
	return s.getProductHandler.Handle(ctx, productID)
}

// ListProducts retrieves approved products for the storefront
func (s *ProductService) ListProducts(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return s.listProductsHandler.Handle(ctx, offset, limit)
}

// ListVendorProducts retrieves a vendor's products regardless of status
func (s *ProductService) ListVendorProducts(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error) {
	return s.listVendorProductsHandler.Handle(ctx, vendorID, offset, limit)
}

// ListPendingProducts retrieves products awaiting moderation
func (s *ProductService) ListPendingProducts(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return s.listPendingProductsHandler.Handle(ctx, offset, limit)
}
