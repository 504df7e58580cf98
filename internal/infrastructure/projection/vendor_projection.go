package projection

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/internal/domain/event"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VendorReadModel is the denormalized vendor view served to queries
type VendorReadModel struct {
	ID        string    `bson:"_id" json:"id"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	StoreName string    `bson:"store_name" json:"storeName"`
	Email     string    `bson:"email" json:"email"`
	Status    string    `bson:"status" json:"status"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MongoVendorProjection maintains the vendor read model collection
type MongoVendorProjection struct {
	collection *mongo.Collection
}

// NewMongoVendorProjection creates a new vendor projection
func NewMongoVendorProjection(db *mongo.Database) *MongoVendorProjection {
	p := &MongoVendorProjection{
		collection: db.Collection("vendor_views"),
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := p.collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		fmt.Printf("Warning: failed to create vendor view indexes: %v\n", err)
	}

	return p
}

// GetByID returns a single vendor view by ID
func (p *MongoVendorProjection) GetByID(ctx context.Context, id string) (interface{}, error) {
	var model VendorReadModel
	err := p.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&model)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vendor not found")
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return &model, nil
}

// ListAll returns vendor views ordered by newest first
func (p *MongoVendorProjection) ListAll(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return p.list(ctx, bson.M{}, offset, limit)
}

// ListByStatus returns vendor views filtered by status
func (p *MongoVendorProjection) ListByStatus(ctx context.Context, status string, offset, limit int) ([]interface{}, error) {
	return p.list(ctx, bson.M{"status": status}, offset, limit)
}

func (p *MongoVendorProjection) list(ctx context.Context, filter bson.M, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := p.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer cursor.Close(ctx)

	var results []interface{}
	for cursor.Next(ctx) {
		var model VendorReadModel
		if err := cursor.Decode(&model); err != nil {
			return nil, fmt.Errorf("failed to decode vendor view: %w", err)
		}
		results = append(results, &model)
	}
	return results, cursor.Err()
}

// HandleVendorRegistered inserts the initial vendor view
func (p *MongoVendorProjection) HandleVendorRegistered(ctx context.Context, e *event.VendorRegistered) error {
	model := VendorReadModel{
		ID:        e.VendorID,
		OwnerID:   e.OwnerID,
		StoreName: e.StoreName,
		Email:     e.Email,
		Status:    "PENDING",
		CreatedAt: e.Timestamp,
		UpdatedAt: e.Timestamp,
	}

	opts := options.Update().SetUpsert(true)
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.VendorID}, bson.M{"$set": model}, opts)
	if err != nil {
		return fmt.Errorf("failed to project vendor registered: %w", err)
	}
	return nil
}

// HandleVendorApproved marks the vendor view approved
func (p *MongoVendorProjection) HandleVendorApproved(ctx context.Context, e *event.VendorApproved) error {
	return p.setStatus(ctx, e.VendorID, "APPROVED", "", e.Timestamp)
}

// HandleVendorRejected marks the vendor view rejected
func (p *MongoVendorProjection) HandleVendorRejected(ctx context.Context, e *event.VendorRejected) error {
	return p.setStatus(ctx, e.VendorID, "REJECTED", e.Reason, e.Timestamp)
}

// HandleVendorSuspended marks the vendor view suspended
func (p *MongoVendorProjection) HandleVendorSuspended(ctx context.Context, e *event.VendorSuspended) error {
	return p.setStatus(ctx, e.VendorID, "SUSPENDED", e.Reason, e.Timestamp)
}

// HandleVendorProfileUpdated applies profile changes to the view
func (p *MongoVendorProjection) HandleVendorProfileUpdated(ctx context.Context, e *event.VendorProfileUpdated) error {
	update := bson.M{"$set": bson.M{
		"store_name": e.StoreName,
		"email":      e.Email,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.VendorID}, update)
	if err != nil {
		return fmt.Errorf("failed to project vendor profile update: %w", err)
	}
	return nil
}

func (p *MongoVendorProjection) setStatus(ctx context.Context, vendorID, status, reason string, at time.Time) error {
	fields := bson.M{
		"status":     status,
		"updated_at": at,
	}
	if reason != "" {
		fields["reason"] = reason
	}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": vendorID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to project vendor status change: %w", err)
	}
	return nil
}
