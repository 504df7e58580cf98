package mongo

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/internal/domain/aggregate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type vendorDocument struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"owner_id"`
	StoreName string    `bson:"store_name"`
	Email     string    `bson:"email"`
	Status    string    `bson:"status"`
	Version   int       `bson:"version"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoVendorRepository implements VendorRepository with MongoDB persistence
type MongoVendorRepository struct {
	entityCollection *mongo.Collection
	eventCollection  *mongo.Collection
	session          mongo.Session
}

// NewMongoVendorRepository creates a new MongoDB vendor repository
func NewMongoVendorRepository(database *mongo.Database) *MongoVendorRepository {
	return &MongoVendorRepository{
		entityCollection: database.Collection("vendors"),
		eventCollection:  database.Collection("vendor_events"),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoVendorRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoVendorRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoVendorRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoVendorRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save upserts the vendor's current state and appends its uncommitted events
func (r *MongoVendorRepository) Save(ctx context.Context, vendor *aggregate.Vendor) error {
	ctxToUse := r.sessionContext(ctx)

	doc := vendorDocument{
		ID:        vendor.ID(),
		OwnerID:   vendor.OwnerID(),
		StoreName: vendor.StoreName(),
		Email:     vendor.Email(),
		Status:    string(vendor.Status()),
		Version:   vendor.Version(),
		CreatedAt: vendor.CreatedAt(),
		UpdatedAt: vendor.UpdatedAt(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.entityCollection.UpdateOne(ctxToUse, bson.M{"_id": vendor.ID()}, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}

	events := vendor.GetUncommittedEvents()
	if len(events) > 0 {
		eventDocs := make([]interface{}, 0, len(events))
		for _, e := range events {
			eventDocs = append(eventDocs, bson.M{
				"aggregate_id":  e.AggregateID(),
				"event_type":    e.EventType(),
				"event_version": e.Version(),
				"occurred_at":   e.OccurredAt(),
				"event_data":    e,
			})
		}

		if _, err := r.eventCollection.InsertMany(ctxToUse, eventDocs); err != nil {
			return fmt.Errorf("failed to save vendor events: %w", err)
		}

		vendor.MarkEventsAsCommitted()
	}

	return nil
}

// GetByID retrieves a vendor aggregate by ID
func (r *MongoVendorRepository) GetByID(ctx context.Context, id string) (*aggregate.Vendor, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByOwnerID retrieves the vendor owned by the given account
func (r *MongoVendorRepository) GetByOwnerID(ctx context.Context, ownerID string) (*aggregate.Vendor, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoVendorRepository) findOne(ctx context.Context, filter bson.M) (*aggregate.Vendor, error) {
	ctxToUse := r.sessionContext(ctx)

	var doc vendorDocument
	err := r.entityCollection.FindOne(ctxToUse, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vendor not found")
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return aggregate.ReconstructVendor(
		doc.ID,
		doc.OwnerID,
		doc.StoreName,
		doc.Email,
		aggregate.VendorStatus(doc.Status),
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
