package event

import "time"

// ProductSubmitted event
type ProductSubmitted struct {
	ProductID   string    `json:"product_id"`
	VendorID    string    `json:"vendor_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e *ProductSubmitted) EventType() string     { return "ProductSubmitted" }
func (e *ProductSubmitted) AggregateID() string   { return e.ProductID }
func (e *ProductSubmitted) OccurredAt() time.Time { return e.Timestamp }
func (e *ProductSubmitted) Version() int          { return 1 }

// ProductApproved event
type ProductApproved struct {
	ProductID    string    `json:"product_id"`
	ApprovedBy   string    `json:"approved_by"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *ProductApproved) EventType() string     { return "ProductApproved" }
func (e *ProductApproved) AggregateID() string   { return e.ProductID }
func (e *ProductApproved) OccurredAt() time.Time { return e.Timestamp }
func (e *ProductApproved) Version() int          { return e.EventVersion }

// ProductRejected event
type ProductRejected struct {
	ProductID    string    `json:"product_id"`
	Reason       string    `json:"reason"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *ProductRejected) EventType() string     { return "ProductRejected" }
func (e *ProductRejected) AggregateID() string   { return e.ProductID }
func (e *ProductRejected) OccurredAt() time.Time { return e.Timestamp }
func (e *ProductRejected) Version() int          { return e.EventVersion }

// ProductUpdated event
type ProductUpdated struct {
	ProductID    string    `json:"product_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *ProductUpdated) EventType() string     { return "ProductUpdated" }
func (e *ProductUpdated) AggregateID() string   { return e.ProductID }
func (e *ProductUpdated) OccurredAt() time.Time { return e.Timestamp }
func (e *ProductUpdated) Version() int          { return e.EventVersion }

// ProductImageUpdated event
type ProductImageUpdated struct {
	ProductID    string    `json:"product_id"`
	ImageUrl     string    `json:"image_url"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *ProductImageUpdated) EventType() string     { return "ProductImageUpdated" }
func (e *ProductImageUpdated) AggregateID() string   { return e.ProductID }
func (e *ProductImageUpdated) OccurredAt() time.Time { return e.Timestamp }
func (e *ProductImageUpdated) Version() int          { return e.EventVersion }
