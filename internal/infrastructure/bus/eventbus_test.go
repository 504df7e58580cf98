package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domain/event"
)

func TestInMemoryEventBusDeliversToSubscribers(t *testing.T) {
	b := NewInMemoryEventBus()

	var received []string
	err := b.Subscribe("VendorRegistered", EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		received = append(received, evt.AggregateID())
		return nil
	}))
	require.NoError(t, err)

	evt := &event.VendorRegistered{VendorID: "vendor-1", OwnerID: "owner-1", StoreName: "Acme", Email: "acme@example.com", Timestamp: time.Now()}
	require.NoError(t, b.Publish(context.Background(), evt))

	assert.Equal(t, []string{"vendor-1"}, received)
}

func TestInMemoryEventBusIgnoresUnsubscribedEvents(t *testing.T) {
	b := NewInMemoryEventBus()

	evt := &event.VendorRegistered{VendorID: "vendor-1", OwnerID: "owner-1", StoreName: "Acme", Email: "acme@example.com", Timestamp: time.Now()}
	assert.NoError(t, b.Publish(context.Background(), evt))
}

func TestInMemoryEventBusCollectsHandlerErrors(t *testing.T) {
	b := NewInMemoryEventBus()

	require.NoError(t, b.Subscribe("VendorRegistered", EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		return errors.New("projection offline")
	})))

	evt := &event.VendorRegistered{VendorID: "vendor-1", OwnerID: "owner-1", StoreName: "Acme", Email: "acme@example.com", Timestamp: time.Now()}
	err := b.Publish(context.Background(), evt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projection offline")
}

func TestInMemoryEventBusPublishBatchStopsAtFirstFailure(t *testing.T) {
	b := NewInMemoryEventBus()

	var handled int
	require.NoError(t, b.Subscribe("VendorRegistered", EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		handled++
		if evt.AggregateID() == "vendor-2" {
			return errors.New("boom")
		}
		return nil
	})))

	events := []event.DomainEvent{
		&event.VendorRegistered{VendorID: "vendor-1", OwnerID: "o1", StoreName: "One", Email: "one@example.com", Timestamp: time.Now()},
		&event.VendorRegistered{VendorID: "vendor-2", OwnerID: "o2", StoreName: "Two", Email: "two@example.com", Timestamp: time.Now()},
		&event.VendorRegistered{VendorID: "vendor-3", OwnerID: "o3", StoreName: "Three", Email: "three@example.com", Timestamp: time.Now()},
	}

	err := b.PublishBatch(context.Background(), events)
	require.Error(t, err)
	assert.Equal(t, 2, handled)
}

func TestAsyncEventBusDeliversEventually(t *testing.T) {
	b := NewAsyncEventBus()

	done := make(chan string, 1)
	require.NoError(t, b.Subscribe("VendorRegistered", EventHandlerFunc(func(ctx context.Context, evt event.DomainEvent) error {
		done <- evt.AggregateID()
		return nil
	})))

	evt := &event.VendorRegistered{VendorID: "vendor-1", OwnerID: "owner-1", StoreName: "Acme", Email: "acme@example.com", Timestamp: time.Now()}
	require.NoError(t, b.Publish(context.Background(), evt))

	select {
	case id := <-done:
		assert.Equal(t, "vendor-1", id)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}

	b.Wait()
}
