package aggregate

import (
	"strings"
	"testing"

	"marketplace-backend/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderItems() []OrderItem {
	return []OrderItem{
		{ProductID: "prod-1", VendorID: "vendor-1", Name: "Dog Leash", UnitPrice: 50000, Quantity: 2},
		{ProductID: "prod-2", VendorID: "vendor-2", Name: "Cat Tree", UnitPrice: 120000, Quantity: 1},
	}
}

func TestNewOrder(t *testing.T) {
	order, err := NewOrder("buyer-1", testOrderItems())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID())
	assert.Equal(t, "buyer-1", order.BuyerID())
	assert.True(t, strings.HasPrefix(order.OrderNumber(), "ORD-"))
	assert.Equal(t, float64(220000), order.Total())
	assert.Equal(t, PaymentStatusPending, order.Status())
	assert.Equal(t, 1, order.Version())

	events := order.GetUncommittedEvents()
	require.Len(t, events, 1)
	placed, ok := events[0].(*event.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, order.ID(), placed.OrderID)
	assert.Equal(t, order.OrderNumber(), placed.OrderNumber)
	assert.Len(t, placed.Items, 2)
	assert.Equal(t, float64(220000), placed.Total)
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder("", testOrderItems())
	assert.Error(t, err)

	_, err = NewOrder("buyer-1", nil)
	assert.Error(t, err)

	_, err = NewOrder("buyer-1", []OrderItem{
		{ProductID: "", VendorID: "vendor-1", UnitPrice: 100, Quantity: 1},
	})
	assert.Error(t, err)

	_, err = NewOrder("buyer-1", []OrderItem{
		{ProductID: "prod-1", VendorID: "", UnitPrice: 100, Quantity: 1},
	})
	assert.Error(t, err)

	_, err = NewOrder("buyer-1", []OrderItem{
		{ProductID: "prod-1", VendorID: "vendor-1", UnitPrice: 100, Quantity: 0},
	})
	assert.Error(t, err)

	_, err = NewOrder("buyer-1", []OrderItem{
		{ProductID: "prod-1", VendorID: "vendor-1", UnitPrice: -1, Quantity: 1},
	})
	assert.Error(t, err)
}

func TestOrderMarkCompleted(t *testing.T) {
	order, err := NewOrder("buyer-1", testOrderItems())
	require.NoError(t, err)
	order.MarkEventsAsCommitted()

	require.NoError(t, order.MarkCompleted())
	assert.Equal(t, PaymentStatusCompleted, order.Status())
	assert.Equal(t, 2, order.Version())

	events := order.GetUncommittedEvents()
	require.Len(t, events, 1)
	completed, ok := events[0].(*event.OrderCompleted)
	require.True(t, ok)
	assert.Equal(t, order.Total(), completed.Total)
	assert.Len(t, completed.Items, 2)

	// completed orders are immutable
	assert.Error(t, order.MarkCompleted())
	assert.Error(t, order.MarkFailed("too late"))
	assert.Error(t, order.Cancel("too late"))
}

func TestOrderMarkFailed(t *testing.T) {
	order, err := NewOrder("buyer-1", testOrderItems())
	require.NoError(t, err)
	order.MarkEventsAsCommitted()

	require.NoError(t, order.MarkFailed("payment expired"))
	assert.Equal(t, PaymentStatusFailed, order.Status())

	events := order.GetUncommittedEvents()
	require.Len(t, events, 1)
	failed, ok := events[0].(*event.OrderFailed)
	require.True(t, ok)
	assert.Equal(t, "payment expired", failed.Reason)

	assert.Error(t, order.MarkCompleted())
}

func TestOrderCancel(t *testing.T) {
	order, err := NewOrder("buyer-1", testOrderItems())
	require.NoError(t, err)

	require.NoError(t, order.Cancel("changed my mind"))
	assert.Equal(t, PaymentStatusCancelled, order.Status())

	assert.Error(t, order.Cancel("again"))
}

func TestOrderVendorShares(t *testing.T) {
	order, err := NewOrder("buyer-1", []OrderItem{
		{ProductID: "prod-1", VendorID: "vendor-1", Name: "Leash", UnitPrice: 50000, Quantity: 2},
		{ProductID: "prod-2", VendorID: "vendor-1", Name: "Collar", UnitPrice: 30000, Quantity: 1},
		{ProductID: "prod-3", VendorID: "vendor-2", Name: "Cat Tree", UnitPrice: 120000, Quantity: 1},
	})
	require.NoError(t, err)

	shares := order.VendorShares()
	require.Len(t, shares, 2)
	assert.Equal(t, float64(130000), shares["vendor-1"])
	assert.Equal(t, float64(120000), shares["vendor-2"])
}
