package event

import "time"

// OrderItemData carries a line item inside order events
type OrderItemData struct {
	ProductID string  `json:"product_id"`
	VendorID  string  `json:"vendor_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// OrderPlaced event
type OrderPlaced struct {
	OrderID     string          `json:"order_id"`
	BuyerID     string          `json:"buyer_id"`
	OrderNumber string          `json:"order_number"`
	Items       []OrderItemData `json:"items"`
	Total       float64         `json:"total"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (e *OrderPlaced) EventType() string     { return "OrderPlaced" }
func (e *OrderPlaced) AggregateID() string   { return e.OrderID }
func (e *OrderPlaced) OccurredAt() time.Time { return e.Timestamp }
func (e *OrderPlaced) Version() int          { return 1 }

// OrderCompleted event
type OrderCompleted struct {
	OrderID      string          `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	Items        []OrderItemData `json:"items"`
	Total        float64         `json:"total"`
	EventVersion int             `json:"version"`
	Timestamp    time.Time       `json:"timestamp"`
}

func (e *OrderCompleted) EventType() string     { return "OrderCompleted" }
func (e *OrderCompleted) AggregateID() string   { return e.OrderID }
func (e *OrderCompleted) OccurredAt() time.Time { return e.Timestamp }
func (e *OrderCompleted) Version() int          { return e.EventVersion }

// OrderFailed event
type OrderFailed struct {
	OrderID      string    `json:"order_id"`
	Reason       string    `json:"reason"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *OrderFailed) EventType() string     { return "OrderFailed" }
func (e *OrderFailed) AggregateID() string   { return e.OrderID }
func (e *OrderFailed) OccurredAt() time.Time { return e.Timestamp }
func (e *OrderFailed) Version() int          { return e.EventVersion }

// OrderCancelled event
type OrderCancelled struct {
	OrderID      string    `json:"order_id"`
	Reason       string    `json:"reason"`
	EventVersion int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *OrderCancelled) EventType() string     { return "OrderCancelled" }
func (e *OrderCancelled) AggregateID() string   { return e.OrderID }
func (e *OrderCancelled) OccurredAt() time.Time { return e.Timestamp }
func (e *OrderCancelled) Version() int          { return e.EventVersion }
