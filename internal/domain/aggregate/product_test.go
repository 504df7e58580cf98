package aggregate

import (
	"testing"

	"marketplace-backend/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct("vendor-1", "Dog Leash", "Sturdy nylon leash", 50000)
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID())
	assert.Equal(t, "vendor-1", product.VendorID())
	assert.Equal(t, ProductStatusPending, product.Status())
	assert.Equal(t, 1, product.Version())

	events := product.GetUncommittedEvents()
	require.Len(t, events, 1)
	submitted, ok := events[0].(*event.ProductSubmitted)
	require.True(t, ok)
	assert.Equal(t, product.ID(), submitted.ProductID)
	assert.Equal(t, float64(50000), submitted.Price)
}

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("", "Dog Leash", "", 50000)
	assert.Error(t, err)

	_, err = NewProduct("vendor-1", "", "", 50000)
	assert.Error(t, err)

	_, err = NewProduct("vendor-1", "Dog Leash", "", -1)
	assert.Error(t, err)
}

func TestProductApprove(t *testing.T) {
	product, err := NewProduct("vendor-1", "Dog Leash", "", 50000)
	require.NoError(t, err)
	product.MarkEventsAsCommitted()

	require.NoError(t, product.Approve("admin-1"))
	assert.Equal(t, ProductStatusApproved, product.Status())

	events := product.GetUncommittedEvents()
	require.Len(t, events, 1)
	approved, ok := events[0].(*event.ProductApproved)
	require.True(t, ok)
	assert.Equal(t, "admin-1", approved.ApprovedBy)

	assert.Error(t, product.Approve("admin-2"))
	assert.Error(t, product.Reject("too late"))
}

func TestProductApproveRequiresApprover(t *testing.T) {
	product, err := NewProduct("vendor-1", "Dog Leash", "", 50000)
	require.NoError(t, err)

	assert.Error(t, product.Approve(""))
	assert.Equal(t, ProductStatusPending, product.Status())
}

func TestProductReject(t *testing.T) {
	product, err := NewProduct("vendor-1", "Dog Leash", "", 50000)
	require.NoError(t, err)
	product.MarkEventsAsCommitted()

	require.NoError(t, product.Reject("prohibited item"))
	assert.Equal(t, ProductStatusRejected, product.Status())

	events := product.GetUncommittedEvents()
	require.Len(t, events, 1)
	rejected, ok := events[0].(*event.ProductRejected)
	require.True(t, ok)
	assert.Equal(t, "prohibited item", rejected.Reason)
}

func TestProductUpdate(t *testing.T) {
	product, err := NewProduct("vendor-1", "Dog Leash", "Old description", 50000)
	require.NoError(t, err)
	product.MarkEventsAsCommitted()

	require.NoError(t, product.Update("Premium Dog Leash", "New description", 65000))
	assert.Equal(t, "Premium Dog Leash", product.Name())
	assert.Equal(t, float64(65000), product.Price())
	assert.Equal(t, 2, product.Version())

	assert.Error(t, product.Update("", "desc", 65000))
	assert.Error(t, product.Update("Leash", "desc", -1))
}

func TestProductSetImage(t *testing.T) {
	product, err := NewProduct("vendor-1", "Dog Leash", "", 50000)
	require.NoError(t, err)
	product.MarkEventsAsCommitted()

	require.NoError(t, product.SetImage("https://cdn.example.com/leash.jpg"))
	assert.Equal(t, "https://cdn.example.com/leash.jpg", product.ImageUrl())

	events := product.GetUncommittedEvents()
	require.Len(t, events, 1)
	updated, ok := events[0].(*event.ProductImageUpdated)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/leash.jpg", updated.ImageUrl)

	assert.Error(t, product.SetImage(""))
}
