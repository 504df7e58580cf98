package aggregate

import (
	"fmt"
	"time"

	"marketplace-backend/internal/domain/event"

	"github.com/google/uuid"
)

// VendorStatus represents the approval status of a vendor
type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "PENDING"
	VendorStatusApproved  VendorStatus = "APPROVED"
	VendorStatusRejected  VendorStatus = "REJECTED"
	VendorStatusSuspended VendorStatus = "SUSPENDED"
)

type Vendor struct {
	id        string
	ownerID   string
	storeName string
	email     string
	status    VendorStatus
	version   int
	createdAt time.Time
	updatedAt time.Time

	uncommittedEvents []event.DomainEvent
}

// NewVendor registers a new vendor store, pending admin approval
func NewVendor(ownerID, storeName, email string) (*Vendor, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner ID cannot be empty")
	}
	if storeName == "" {
		return nil, fmt.Errorf("store name cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	now := time.Now()
	vendor := &Vendor{
		id:        uuid.New().String(),
		ownerID:   ownerID,
		storeName: storeName,
		email:     email,
		status:    VendorStatusPending,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}

	vendor.raiseEvent(&event.VendorRegistered{
		VendorID:  vendor.id,
		OwnerID:   ownerID,
		StoreName: storeName,
		Email:     email,
		Timestamp: now,
	})

	return vendor, nil
}

// ReconstructVendor rebuilds a vendor from persisted state
func ReconstructVendor(id, ownerID, storeName, email string, status VendorStatus, version int, createdAt, updatedAt time.Time) *Vendor {
	return &Vendor{
		id:        id,
		ownerID:   ownerID,
		storeName: storeName,
		email:     email,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Approve moves a pending vendor to approved
func (v *Vendor) Approve(approvedBy string) error {
	if v.status != VendorStatusPending {
		return fmt.Errorf("only pending vendors can be approved (current status: %s)", v.status)
	}
	if approvedBy == "" {
		return fmt.Errorf("approver ID is required")
	}

	now := time.Now()
	v.status = VendorStatusApproved
	v.version++
	v.updatedAt = now

	v.raiseEvent(&event.VendorApproved{
		VendorID:     v.id,
		ApprovedBy:   approvedBy,
		EventVersion: v.version,
		Timestamp:    now,
	})

	return nil
}

// Reject moves a pending vendor to rejected
func (v *Vendor) Reject(reason string) error {
	if v.status != VendorStatusPending {
		return fmt.Errorf("only pending vendors can be rejected (current status: %s)", v.status)
	}

	now := time.Now()
	v.status = VendorStatusRejected
	v.version++
	v.updatedAt = now

	v.raiseEvent(&event.VendorRejected{
		VendorID:     v.id,
		Reason:       reason,
		EventVersion: v.version,
		Timestamp:    now,
	})

	return nil
}

// Suspend takes an approved vendor off the storefront
func (v *Vendor) Suspend(reason string) error {
	if v.status != VendorStatusApproved {
		return fmt.Errorf("only approved vendors can be suspended (current status: %s)", v.status)
	}

	now := time.Now()
	v.status = VendorStatusSuspended
	v.version++
	v.updatedAt = now

	v.raiseEvent(&event.VendorSuspended{
		VendorID:     v.id,
		Reason:       reason,
		EventVersion: v.version,
		Timestamp:    now,
	})

	return nil
}

// UpdateProfile changes the vendor's store name and contact email
func (v *Vendor) UpdateProfile(storeName, email string) error {
	if storeName == "" {
		return fmt.Errorf("store name cannot be empty")
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	now := time.Now()
	v.storeName = storeName
	v.email = email
	v.version++
	v.updatedAt = now

	v.raiseEvent(&event.VendorProfileUpdated{
		VendorID:     v.id,
		StoreName:    storeName,
		Email:        email,
		EventVersion: v.version,
		Timestamp:    now,
	})

	return nil
}

func (v *Vendor) raiseEvent(ev event.DomainEvent) {
	v.uncommittedEvents = append(v.uncommittedEvents, ev)
}

func (v *Vendor) GetUncommittedEvents() []event.DomainEvent {
	return v.uncommittedEvents
}

func (v *Vendor) MarkEventsAsCommitted() {
	v.uncommittedEvents = nil
}

// Getters
func (v *Vendor) ID() string           { return v.id }
func (v *Vendor) OwnerID() string      { return v.ownerID }
func (v *Vendor) StoreName() string    { return v.storeName }
func (v *Vendor) Email() string        { return v.email }
func (v *Vendor) Status() VendorStatus { return v.status }
func (v *Vendor) Version() int         { return v.version }
func (v *Vendor) CreatedAt() time.Time { return v.createdAt }
func (v *Vendor) UpdatedAt() time.Time { return v.updatedAt }
