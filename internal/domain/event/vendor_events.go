package event

import "time"

// VendorRegistered event
type VendorRegistered struct {
	VendorID  string    `json:"vendor_id"`
	OwnerID   string    `json:"owner_id"`
	StoreName string    `json:"store_name"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *VendorRegistered) EventType() string     { return "VendorRegistered" }
func (e *VendorRegistered) AggregateID() string   { return e.VendorID }
func (e *VendorRegistered) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorRegistered) Version() int          { return 1 }

// VendorApproved event
type VendorApproved struct {
	VendorID     string    `json:"vendor_id"`
	ApprovedBy   string    `json:"approved_by"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *VendorApproved) EventType() string     { return "VendorApproved" }
func (e *VendorApproved) AggregateID() string   { return e.VendorID }
func (e *VendorApproved) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorApproved) Version() int          { return e.EventVersion }

// VendorRejected event
type VendorRejected struct {
	VendorID     string    `json:"vendor_id"`
	Reason       string    `json:"reason"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *VendorRejected) EventType() string     { return "VendorRejected" }
func (e *VendorRejected) AggregateID() string   { return e.VendorID }
func (e *VendorRejected) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorRejected) Version() int          { return e.EventVersion }

// VendorSuspended event
type VendorSuspended struct {
	VendorID     string    `json:"vendor_id"`
	Reason       string    `json:"reason"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *VendorSuspended) EventType() string     { return "VendorSuspended" }
func (e *VendorSuspended) AggregateID() string   { return e.VendorID }
func (e *VendorSuspended) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorSuspended) Version() int          { return e.EventVersion }

// VendorProfileUpdated event
type VendorProfileUpdated struct {
	VendorID     string    `json:"vendor_id"`
	StoreName    string    `json:"store_name"`
	Email        string    `json:"email"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *VendorProfileUpdated) EventType() string     { return "VendorProfileUpdated" }
func (e *VendorProfileUpdated) AggregateID() string   { return e.VendorID }
func (e *VendorProfileUpdated) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorProfileUpdated) Version() int          { return e.EventVersion }
