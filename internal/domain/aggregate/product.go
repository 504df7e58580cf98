package aggregate

import (
	"fmt"
	"time"

	"marketplace-backend/internal/domain/event"

	"github.com/google/uuid"
)

// ProductStatus represents the moderation status of a product
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "PENDING"
	ProductStatusApproved ProductStatus = "APPROVED"
	ProductStatusRejected ProductStatus = "REJECTED"
)

type Product struct {
	id          string
	vendorID    string
	name        string
	description string
	price       float64
	imageUrl    string
	status      ProductStatus
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	uncommittedEvents []event.DomainEvent
}

// NewProduct submits a new product for moderation
func NewProduct(vendorID, name, description string, price float64) (*Product, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("vendor ID cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	now := time.Now()
	product := &Product{
		id:          uuid.New().String(),
		vendorID:    vendorID,
		name:        name,
		description: description,
		price:       price,
		status:      ProductStatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}

	product.raiseEvent(&event.ProductSubmitted{
		ProductID:   product.id,
		VendorID:    vendorID,
		Name:        name,
		Description: description,
		Price:       price,
		Timestamp:   now,
	})

	return product, nil
}

// ReconstructProduct rebuilds a product from persisted state
func ReconstructProduct(id, vendorID, name, description string, price float64, imageUrl string, status ProductStatus, version int, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:          id,
		vendorID:    vendorID,
		name:        name,
		description: description,
		price:       price,
		imageUrl:    imageUrl,
		status:      status,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Approve publishes a pending product to the storefront
func (p *Product) Approve(approvedBy string) error {
	if p.status != ProductStatusPending {
		return fmt.Errorf("only pending products can be approved (current status: %s)", p.status)
	}
	if approvedBy == "" {
		return fmt.Errorf("approver ID is required")
	}

	now := time.Now()
	p.status = ProductStatusApproved
	p.version++
	p.updatedAt = now

	p.raiseEvent(&event.ProductApproved{
		ProductID:    p.id,
		ApprovedBy:   approvedBy,
		EventVersion: p.version,
		Timestamp:    now,
	})

	return nil
}

// Reject declines a pending product
func (p *Product) Reject(reason string) error {
	if p.status != ProductStatusPending {
		return fmt.Errorf("only pending products can be rejected (current status: %s)", p.status)
	}

	now := time.Now()
	p.status = ProductStatusRejected
	p.version++
	p.updatedAt = now

	p.raiseEvent(&event.ProductRejected{
		ProductID:    p.id,
		Reason:       reason,
		EventVersion: p.version,
		Timestamp:    now,
	})

	return nil
}

// Update changes the product listing details
func (p *Product) Update(name, description string, price float64) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if price < 0 {
		return fmt.Errorf("price cannot be negative")
	}

	now := time.Now()
	p.name = name
	p.description = description
	p.price = price
	p.version++
	p.updatedAt = now

	p.raiseEvent(&event.ProductUpdated{
		ProductID:    p.id,
		Name:         name,
		Description:  description,
		Price:        price,
		EventVersion: p.version,
		Timestamp:    now,
	})

	return nil
}

// SetImage attaches an uploaded image URL to the product
func (p *Product) SetImage(imageUrl string) error {
	if imageUrl == "" {
		return fmt.Errorf("image URL cannot be empty")
	}

	now := time.Now()
	p.imageUrl = imageUrl
	p.version++
	p.updatedAt = now

	p.raiseEvent(&event.ProductImageUpdated{
		ProductID:    p.id,
		ImageUrl:     imageUrl,
		EventVersion: p.version,
		Timestamp:    now,
	})

	return nil
}

func (p *Product) raiseEvent(ev event.DomainEvent) {
	p.uncommittedEvents = append(p.uncommittedEvents, ev)
}

func (p *Product) GetUncommittedEvents() []event.DomainEvent {
	return p.uncommittedEvents
}

func (p *Product) MarkEventsAsCommitted() {
	p.uncommittedEvents = nil
}

// Getters
func (p *Product) ID() string            { return p.id }
func (p *Product) VendorID() string      { return p.vendorID }
func (p *Product) Name() string          { return p.name }
func (p *Product) Description() string   { return p.description }
func (p *Product) Price() float64        { return p.price }
func (p *Product) ImageUrl() string      { return p.imageUrl }
func (p *Product) Status() ProductStatus { return p.status }
func (p *Product) Version() int          { return p.version }
func (p *Product) CreatedAt() time.Time  { return p.createdAt }
func (p *Product) UpdatedAt() time.Time  { return p.updatedAt }
