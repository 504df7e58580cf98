package cloudinary

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Service provides Cloudinary upload and URL operations
type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

// UploadResult contains information about an uploaded file
type UploadResult struct {
	PublicID     string    `json:"public_id"`
	SecureURL    string    `json:"secure_url"`
	URL          string    `json:"url"`
	Format       string    `json:"format"`
	ResourceType string    `json:"resource_type"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Bytes        int       `json:"bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadOptions provides options for uploading files
type UploadOptions struct {
	Folder         string
	PublicID       string
	Overwrite      bool
	UniqueFilename bool
	Transformation string
	Tags           []string
	ResourceType   string
	AllowedFormats []string
}

// NewService creates a new Cloudinary service
func NewService(config *Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cloudinary config: %w", err)
	}

	cld, err := cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		cld:          cld,
		uploadFolder: config.UploadFolder,
	}, nil
}

// UploadFile uploads a file to Cloudinary
func (s *Service) UploadFile(ctx context.Context, file io.Reader, filename string, opts *UploadOptions) (*UploadResult, error) {
	if opts == nil {
		opts = &UploadOptions{}
	}

	folder := s.uploadFolder
	if opts.Folder != "" {
		folder = filepath.Join(folder, opts.Folder)
	}
	// Cloudinary folders always use forward slashes
	folder = strings.ReplaceAll(folder, "\\", "/")

	uploadParams := uploader.UploadParams{
		Folder:         folder,
		UniqueFilename: api.Bool(opts.UniqueFilename),
		Overwrite:      api.Bool(opts.Overwrite),
	}

	if opts.PublicID != "" {
		uploadParams.PublicID = opts.PublicID
	}
	if opts.Transformation != "" {
		uploadParams.Transformation = opts.Transformation
	}
	if len(opts.Tags) > 0 {
		uploadParams.Tags = api.CldAPIArray(opts.Tags)
	}
	if opts.ResourceType != "" {
		uploadParams.ResourceType = opts.ResourceType
	} else {
		uploadParams.ResourceType = "auto"
	}
	if len(opts.AllowedFormats) > 0 {
		uploadParams.AllowedFormats = opts.AllowedFormats
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("cloudinary returned nil result")
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("cloudinary upload failed: empty public ID (check credentials)")
	}

	return &UploadResult{
		PublicID:     result.PublicID,
		SecureURL:    result.SecureURL,
		URL:          result.URL,
		Format:       result.Format,
		ResourceType: result.ResourceType,
		Width:        result.Width,
		Height:       result.Height,
		Bytes:        result.Bytes,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// UploadMultipartFile uploads a multipart file to Cloudinary
func (s *Service) UploadMultipartFile(ctx context.Context, fileHeader *multipart.FileHeader, opts *UploadOptions) (*UploadResult, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open multipart file: %w", err)
	}
	defer file.Close()

	return s.UploadFile(ctx, file, fileHeader.Filename, opts)
}

// UploadProductImage uploads a product listing image with optimized settings
func (s *Service) UploadProductImage(ctx context.Context, file io.Reader, filename string, productID string) (*UploadResult, error) {
	opts := &UploadOptions{
		Folder:         "products",
		PublicID:       fmt.Sprintf("product_%s_%d", productID, time.Now().Unix()),
		UniqueFilename: false,
		Overwrite:      false,
		Tags:           []string{"product", productID},
		ResourceType:   "image",
		AllowedFormats: []string{"jpg", "jpeg", "png", "webp"},
		Transformation: "q_auto,f_auto",
	}

	return s.UploadFile(ctx, file, filename, opts)
}

// UploadStoreLogo uploads a vendor store logo, overwriting any previous one
func (s *Service) UploadStoreLogo(ctx context.Context, file io.Reader, filename string, vendorID string) (*UploadResult, error) {
	opts := &UploadOptions{
		Folder:         "stores",
		PublicID:       fmt.Sprintf("store_%s", vendorID),
		UniqueFilename: false,
		Overwrite:      true,
		Tags:           []string{"store", vendorID},
		ResourceType:   "image",
		AllowedFormats: []string{"jpg", "jpeg", "png", "webp"},
		Transformation: "w_600,h_600,c_limit,q_auto,f_auto",
	}

	return s.UploadFile(ctx, file, filename, opts)
}

// DeleteFile deletes a file from Cloudinary by public ID
func (s *Service) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetTransformedURL generates a transformed URL for an existing image
func (s *Service) GetTransformedURL(publicID string, transformation string) (string, error) {
	asset, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to generate asset: %w", err)
	}

	url, err := asset.String()
	if err != nil {
		return "", fmt.Errorf("failed to generate URL: %w", err)
	}

	if transformation != "" {
		parts := strings.Split(url, "/upload/")
		if len(parts) == 2 {
			url = parts[0] + "/upload/" + transformation + "/" + parts[1]
		}
	}

	return url, nil
}

// GetThumbnailURL generates a square thumbnail URL
func (s *Service) GetThumbnailURL(publicID string, size int) (string, error) {
	transformation := fmt.Sprintf("w_%d,h_%d,c_fill,q_auto,f_auto", size, size)
	return s.GetTransformedURL(publicID, transformation)
}

// ExtractPublicIDFromURL extracts the public ID from a Cloudinary URL
func (s *Service) ExtractPublicIDFromURL(url string) string {
	parts := strings.Split(url, "/upload/")
	if len(parts) < 2 {
		return ""
	}

	path := parts[1]
	parts = strings.Split(path, "/")
	if len(parts) < 2 {
		return ""
	}

	// Skip the version segment (v123456) if present
	startIdx := 0
	if strings.HasPrefix(parts[0], "v") {
		startIdx = 1
	}

	publicIDWithExt := strings.Join(parts[startIdx:], "/")
	return strings.TrimSuffix(publicIDWithExt, filepath.Ext(publicIDWithExt))
}
