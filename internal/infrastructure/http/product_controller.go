package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"marketplace-backend/internal/application/command"
	"marketplace-backend/internal/application/services"
	"marketplace-backend/internal/infrastructure/cloudinary"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ProductController handles HTTP requests for product operations
type ProductController struct {
	service      *services.ProductService
	imageService *cloudinary.Service
}

// NewProductController creates a new product controller
func NewProductController(service *services.ProductService, imageService *cloudinary.Service) *ProductController {
	return &ProductController{
		service:      service,
		imageService: imageService,
	}
}

// SubmitProduct handles POST /products (Vendor only)
func (c *ProductController) SubmitProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.SubmitProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	productID, err := c.service.SubmitProduct(r.Context(), &cmd)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendCreated(w, r, map[string]string{
		"product_id": productID,
		"status":     "PENDING",
		"message":    "Product submitted for review",
	})
}

// GetProduct handles GET /products/{id}
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		response.SendBadRequest(w, r, "Product ID is required")
		return
	}

	product, err := c.service.GetProduct(r.Context(), productID)
	if err != nil {
		response.SendNotFound(w, r, "Product not found")
		return
	}

	response.SendSuccess(w, r, product)
}

// ListProducts handles GET /products, returning the approved catalog
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := c.service.ListProducts(r.Context(), offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list products")
		return
	}

	response.SendSuccess(w, r, products)
}

// ListVendorProducts handles GET /vendors/{id}/products
func (c *ProductController) ListVendorProducts(w http.ResponseWriter, r *http.Request) {
	vendorID := chi.URLParam(r, "id")
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := c.service.ListVendorProducts(r.Context(), vendorID, offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list vendor products")
		return
	}

	response.SendSuccess(w, r, products)
}

// ListPendingProducts handles GET /admin/products/pending (Admin only)
func (c *ProductController) ListPendingProducts(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := c.service.ListPendingProducts(r.Context(), offset, limit)
	if err != nil {
		response.SendInternalError(w, r, "Failed to list pending products")
		return
	}

	response.SendSuccess(w, r, products)
}

// ApproveProduct handles POST /products/{id}/approve (Admin only)
func (c *ProductController) ApproveProduct(w http.ResponseWriter, r *http.Request) {
	cmd := &command.ApproveProduct{
		ProductID:  chi.URLParam(r, "id"),
		ApprovedBy: middleware.GetUserID(r.Context()),
	}

	if err := c.service.ApproveProduct(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Product approved successfully"})
}

// RejectProduct handles POST /products/{id}/reject (Admin only)
func (c *ProductController) RejectProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}

	cmd := &command.RejectProduct{
		ProductID: chi.URLParam(r, "id"),
		Reason:    req.Reason,
	}

	if err := c.service.RejectProduct(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Product rejected"})
}

// UpdateProduct handles PUT /products/{id} (Vendor only)
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		response.SendBadRequest(w, r, "Product ID is required")
		return
	}

	var cmd command.UpdateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.SendBadRequest(w, r, "Invalid request body")
		return
	}
	cmd.ProductID = productID

	if err := c.service.UpdateProduct(r.Context(), &cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]string{"message": "Product updated successfully"})
}

// UploadProductImage handles POST /products/{id}/image (Vendor only).
// The image goes to Cloudinary first, then the secure URL is stored on the
// product through the command pipeline.
func (c *ProductController) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		response.SendBadRequest(w, r, "Product ID is required")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.SendBadRequest(w, r, "Failed to parse multipart form")
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		response.SendBadRequest(w, r, "Image file is required")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.SendBadRequest(w, r, "File must be an image")
		return
	}

	result, err := c.imageService.UploadProductImage(r.Context(), file, fileHeader.Filename, productID)
	if err != nil {
		response.SendInternalError(w, r, "Failed to upload image")
		return
	}

	cmd := &command.SetProductImage{
		ProductID: productID,
		ImageURL:  result.SecureURL,
	}
	if err := c.service.SetProductImage(r.Context(), cmd); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendSuccess(w, r, map[string]interface{}{
		"product_id": productID,
		"image_url":  result.SecureURL,
		"public_id":  result.PublicID,
		"width":      result.Width,
		"height":     result.Height,
	})
}
