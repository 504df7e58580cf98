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

// ProductReadModel is the denormalized product view served to queries
type ProductReadModel struct {
	ID          string    `bson:"_id" json:"id"`
	VendorID    string    `bson:"vendor_id" json:"vendorId"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	ImageUrl    string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Status      string    `bson:"status" json:"status"`
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// MongoProductProjection maintains the product read model collection
type MongoProductProjection struct {
	collection *mongo.Collection
}

// NewMongoProductProjection creates a new product projection
func NewMongoProductProjection(db *mongo.Database) *MongoProductProjection {
	p := &MongoProductProjection{
		collection: db.Collection("product_views"),
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendor_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := p.collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		fmt.Printf("Warning: failed to create product view indexes: %v\n", err)
	}

	return p
}

// GetByID returns a single product view by ID
func (p *MongoProductProjection) GetByID(ctx context.Context, id string) (interface{}, error) {
	var model ProductReadModel
	err := p.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&model)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &model, nil
}

// ListApproved returns products visible in the public catalog
func (p *MongoProductProjection) ListApproved(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return p.list(ctx, bson.M{"status": "APPROVED"}, offset, limit)
}

// ListByVendor returns a vendor's products regardless of status
func (p *MongoProductProjection) ListByVendor(ctx context.Context, vendorID string, offset, limit int) ([]interface{}, error) {
	return p.list(ctx, bson.M{"vendor_id": vendorID}, offset, limit)
}

// ListByStatus returns products filtered by moderation status
func (p *MongoProductProjection) ListByStatus(ctx context.Context, status string, offset, limit int) ([]interface{}, error) {
	return p.list(ctx, bson.M{"status": status}, offset, limit)
}

func (p *MongoProductProjection) list(ctx context.Context, filter bson.M, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := p.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var results []interface{}
	for cursor.Next(ctx) {
		var model ProductReadModel
		if err := cursor.Decode(&model); err != nil {
			return nil, fmt.Errorf("failed to decode product view: %w", err)
		}
		results = append(results, &model)
	}
	return results, cursor.Err()
}

// HandleProductSubmitted inserts the initial product view
func (p *MongoProductProjection) HandleProductSubmitted(ctx context.Context, e *event.ProductSubmitted) error {
	model := ProductReadModel{
		ID:          e.ProductID,
		VendorID:    e.VendorID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Status:      "PENDING",
		CreatedAt:   e.Timestamp,
		UpdatedAt:   e.Timestamp,
	}

	opts := options.Update().SetUpsert(true)
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.ProductID}, bson.M{"$set": model}, opts)
	if err != nil {
		return fmt.Errorf("failed to project product submitted: %w", err)
	}
	return nil
}

// HandleProductApproved marks the product view approved
func (p *MongoProductProjection) HandleProductApproved(ctx context.Context, e *event.ProductApproved) error {
	update := bson.M{"$set": bson.M{
		"status":     "APPROVED",
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.ProductID}, update)
	if err != nil {
		return fmt.Errorf("failed to project product approval: %w", err)
	}
	return nil
}

// HandleProductRejected marks the product view rejected
func (p *MongoProductProjection) HandleProductRejected(ctx context.Context, e *event.ProductRejected) error {
	update := bson.M{"$set": bson.M{
		"status":     "REJECTED",
		"reason":     e.Reason,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.ProductID}, update)
	if err != nil {
		return fmt.Errorf("failed to project product rejection: %w", err)
	}
	return nil
}

// HandleProductUpdated applies listing changes to the view
func (p *MongoProductProjection) HandleProductUpdated(ctx context.Context, e *event.ProductUpdated) error {
	update := bson.M{"$set": bson.M{
		"name":        e.Name,
		"description": e.Description,
		"price":       e.Price,
		"updated_at":  e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.ProductID}, update)
	if err != nil {
		return fmt.Errorf("failed to project product update: %w", err)
	}
	return nil
}

// HandleProductImageUpdated stores the uploaded image URL on the view
func (p *MongoProductProjection) HandleProductImageUpdated(ctx context.Context, e *event.ProductImageUpdated) error {
	update := bson.M{"$set": bson.M{
		"image_url":  e.ImageUrl,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.ProductID}, update)
	if err != nil {
		return fmt.Errorf("failed to project product image update: %w", err)
	}
	return nil
}
