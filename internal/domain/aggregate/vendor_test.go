package aggregate

import (
	"testing"

	"marketplace-backend/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVendor(t *testing.T) {
	vendor, err := NewVendor("owner-1", "Happy Paws", "store@happypaws.vn")
	require.NoError(t, err)

	assert.NotEmpty(t, vendor.ID())
	assert.Equal(t, "owner-1", vendor.OwnerID())
	assert.Equal(t, "Happy Paws", vendor.StoreName())
	assert.Equal(t, VendorStatusPending, vendor.Status())
	assert.Equal(t, 1, vendor.Version())

	events := vendor.GetUncommittedEvents()
	require.Len(t, events, 1)
	registered, ok := events[0].(*event.VendorRegistered)
	require.True(t, ok)
	assert.Equal(t, vendor.ID(), registered.VendorID)
	assert.Equal(t, "Happy Paws", registered.StoreName)
}

func TestNewVendorValidation(t *testing.T) {
	_, err := NewVendor("", "Happy Paws", "store@happypaws.vn")
	assert.Error(t, err)

	_, err = NewVendor("owner-1", "", "store@happypaws.vn")
	assert.Error(t, err)

	_, err = NewVendor("owner-1", "Happy Paws", "")
	assert.Error(t, err)
}

func TestVendorApprove(t *testing.T) {
	vendor, err := NewVendor("owner-1", "Happy Paws", "store@happypaws.vn")
	require.NoError(t, err)
	vendor.MarkEventsAsCommitted()

	require.NoError(t, vendor.Approve("admin-1"))
	assert.Equal(t, VendorStatusApproved, vendor.Status())

	events := vendor.GetUncommittedEvents()
	require.Len(t, events, 1)
	approved, ok := events[0].(*event.VendorApproved)
	require.True(t, ok)
	assert.Equal(t, "admin-1", approved.ApprovedBy)

	assert.Error(t, vendor.Approve("admin-2"))
	assert.Error(t, vendor.Reject("too late"))
}

func TestVendorApproveRequiresApprover(t *testing.T) {
	vendor, err := NewVendor("owner-1", "Happy Paws", "store@happypaws.vn")
	require.NoError(t, err)

	assert.Error(t, vendor.Approve(""))
	assert.Equal(t, VendorStatusPending, vendor.Status())
}

func TestVendorReject(t *testing.T) {
	vendor, err := NewVendor("owner-1", "Happy Paws", "store@happypaws.vn")
	require.NoError(t, err)
	vendor.MarkEventsAsCommitted()

	require.NoError(t, vendor.Reject("incomplete paperwork"))
	assert.Equal(t, VendorStatusRejected, vendor.Status())

	events := vendor.GetUncommittedEvents()
	require.Len(t, events, 1)
	rejected, ok := events[0].(*event.VendorRejected)
	require.True(t, ok)
	assert.Equal(t, "incomplete paperwork", rejected.Reason)

	assert.Error(t, vendor.Approve("admin-1"))
}

func TestVendorSuspend(t *testing.T) {
	vendor, err := NewVendor("owner-1", "Happy Paws", "store@happypaws.vn")
	require.NoError(t, err)

	// only approved vendors can be suspended
	assert.Error(t, vendor.Suspend("fraud report"))

	require.NoError(t, vendor.Approve("admin-1"))
	vendor.MarkEventsAsCommitted()

	require.NoError(t, vendor.Suspend("fraud report"))
	assert.Equal(t, VendorStatusSuspended, vendor.Status())

	events := vendor.GetUncommittedEvents()
	require.Len(t, events, 1)
	suspended, ok := events[0].(*event.VendorSuspended)
	require.True(t, ok)
	assert.Equal(t, "fraud report", suspended.Reason)
}

func TestVendorUpdateProfile(t *testing.T) {
	vendor, err := NewVendor("owner-1", "Happy Paws", "store@happypaws.vn")
	require.NoError(t, err)
	vendor.MarkEventsAsCommitted()

	require.NoError(t, vendor.UpdateProfile("Happy Paws & Claws", "hello@happypaws.vn"))
	assert.Equal(t, "Happy Paws & Claws", vendor.StoreName())
	assert.Equal(t, "hello@happypaws.vn", vendor.Email())
	assert.Equal(t, 2, vendor.Version())

	assert.Error(t, vendor.UpdateProfile("", "hello@happypaws.vn"))
	assert.Error(t, vendor.UpdateProfile("Happy Paws", ""))
}
