package aggregate

import (
	"fmt"
	"time"

	"marketplace-backend/internal/domain/event"

	"github.com/google/uuid"
)

// PaymentStatus represents the payment status of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// OrderItem is a single line of an order
type OrderItem struct {
	ProductID string
	VendorID  string
	Name      string
	UnitPrice float64
	Quantity  int
}

type Order struct {
	id          string
	buyerID     string
	orderNumber string
	items       []OrderItem
	total       float64
	status      PaymentStatus
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	uncommittedEvents []event.DomainEvent
}

// NewOrder places a new order; the total is computed from the line items
func NewOrder(buyerID string, items []OrderItem) (*Order, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("buyer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	var total float64
	for i, item := range items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("item %d: product ID cannot be empty", i)
		}
		if item.VendorID == "" {
			return nil, fmt.Errorf("item %d: vendor ID cannot be empty", i)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: quantity must be positive", i)
		}
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("item %d: unit price cannot be negative", i)
		}
		total += item.UnitPrice * float64(item.Quantity)
	}

	now := time.Now()
	order := &Order{
		id:          uuid.New().String(),
		buyerID:     buyerID,
		orderNumber: fmt.Sprintf("ORD-%d", now.UnixMilli()),
		items:       items,
		total:       total,
		status:      PaymentStatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}

	order.raiseEvent(&event.OrderPlaced{
		OrderID:     order.id,
		BuyerID:     buyerID,
		OrderNumber: order.orderNumber,
		Items:       toItemData(items),
		Total:       total,
		Timestamp:   now,
	})

	return order, nil
}

// ReconstructOrder rebuilds an order from persisted state
func ReconstructOrder(id, buyerID, orderNumber string, items []OrderItem, total float64, status PaymentStatus, version int, createdAt, updatedAt time.Time) *Order {
	return &Order{
		id:          id,
		buyerID:     buyerID,
		orderNumber: orderNumber,
		items:       items,
		total:       total,
		status:      status,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// MarkCompleted records a successful payment; a completed order is immutable
func (o *Order) MarkCompleted() error {
	if o.status != PaymentStatusPending {
		return fmt.Errorf("only pending orders can be completed (current status: %s)", o.status)
	}

	now := time.Now()
	o.status = PaymentStatusCompleted
	o.version++
	o.updatedAt = now

	o.raiseEvent(&event.OrderCompleted{
		OrderID:      o.id,
		OrderNumber:  o.orderNumber,
		Items:        toItemData(o.items),
		Total:        o.total,
		EventVersion: o.version,
		Timestamp:    now,
	})

	return nil
}

// MarkFailed records a failed payment attempt
func (o *Order) MarkFailed(reason string) error {
	if o.status != PaymentStatusPending {
		return fmt.Errorf("only pending orders can fail (current status: %s)", o.status)
	}

	now := time.Now()
	o.status = PaymentStatusFailed
	o.version++
	o.updatedAt = now

	o.raiseEvent(&event.OrderFailed{
		OrderID:      o.id,
		Reason:       reason,
		EventVersion: o.version,
		Timestamp:    now,
	})

	return nil
}

// Cancel cancels an order before payment completes
func (o *Order) Cancel(reason string) error {
	if o.status != PaymentStatusPending {
		return fmt.Errorf("only pending orders can be cancelled (current status: %s)", o.status)
	}

	now := time.Now()
	o.status = PaymentStatusCancelled
	o.version++
	o.updatedAt = now

	o.raiseEvent(&event.OrderCancelled{
		OrderID:      o.id,
		Reason:       reason,
		EventVersion: o.version,
		Timestamp:    now,
	})

	return nil
}

// VendorShares sums the order total per vendor, used to credit wallets
func (o *Order) VendorShares() map[string]float64 {
	shares := make(map[string]float64, len(o.items))
	for _, item := range o.items {
		shares[item.VendorID] += item.UnitPrice * float64(item.Quantity)
	}
	return shares
}

func toItemData(items []OrderItem) []event.OrderItemData {
	data := make([]event.OrderItemData, 0, len(items))
	for _, item := range items {
		data = append(data, event.OrderItemData{
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return data
}

func (o *Order) raiseEvent(ev event.DomainEvent) {
	o.uncommittedEvents = append(o.uncommittedEvents, ev)
}

func (o *Order) GetUncommittedEvents() []event.DomainEvent {
	return o.uncommittedEvents
}

func (o *Order) MarkEventsAsCommitted() {
	o.uncommittedEvents = nil
}

// Getters
func (o *Order) ID() string            { return o.id }
func (o *Order) BuyerID() string       { return o.buyerID }
func (o *Order) OrderNumber() string   { return o.orderNumber }
func (o *Order) Items() []OrderItem    { return o.items }
func (o *Order) Total() float64        { return o.total }
func (o *Order) Status() PaymentStatus { return o.status }
func (o *Order) Version() int          { return o.version }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time  { return o.updatedAt }
