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

// OrderItemView is one line item inside an order view
type OrderItemView struct {
	ProductID string  `bson:"product_id" json:"productId"`
	VendorID  string  `bson:"vendor_id" json:"vendorId"`
	Name      string  `bson:"name" json:"name"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// OrderReadModel is the denormalized order view served to queries
type OrderReadModel struct {
	ID          string          `bson:"_id" json:"id"`
	BuyerID     string          `bson:"buyer_id" json:"buyerId"`
	OrderNumber string          `bson:"order_number" json:"orderNumber"`
	Items       []OrderItemView `bson:"items" json:"items"`
	Total       float64         `bson:"total" json:"total"`
	Status      string          `bson:"status" json:"status"`
	Reason      string          `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt   time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updatedAt"`
}

// MongoOrderProjection maintains the order read model collection
type MongoOrderProjection struct {
	collection *mongo.Collection
}

// NewMongoOrderProjection creates a new order projection
func NewMongoOrderProjection(db *mongo.Database) *MongoOrderProjection {
	p := &MongoOrderProjection{
		collection: db.Collection("order_views"),
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := p.collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		fmt.Printf("Warning: failed to create order view indexes: %v\n", err)
	}

	return p
}

// GetByID returns a single order view by ID
func (p *MongoOrderProjection) GetByID(ctx context.Context, id string) (interface{}, error) {
	var model OrderReadModel
	err := p.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&model)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &model, nil
}

// ListByBuyer returns a buyer's order history, newest first
func (p *MongoOrderProjection) ListByBuyer(ctx context.Context, buyerID string, offset, limit int) ([]interface{}, error) {
	return p.list(ctx, bson.M{"buyer_id": buyerID}, offset, limit)
}

// ListAll returns all order views, newest first
func (p *MongoOrderProjection) ListAll(ctx context.Context, offset, limit int) ([]interface{}, error) {
	return p.list(ctx, bson.M{}, offset, limit)
}

func (p *MongoOrderProjection) list(ctx context.Context, filter bson.M, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := p.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var results []interface{}
	for cursor.Next(ctx) {
		var model OrderReadModel
		if err := cursor.Decode(&model); err != nil {
			return nil, fmt.Errorf("failed to decode order view: %w", err)
		}
		results = append(results, &model)
	}
	return results, cursor.Err()
}

// HandleOrderPlaced inserts the initial order view
func (p *MongoOrderProjection) HandleOrderPlaced(ctx context.Context, e *event.OrderPlaced) error {
	items := make([]OrderItemView, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, OrderItemView{
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	model := OrderReadModel{
		ID:          e.OrderID,
		BuyerID:     e.BuyerID,
		OrderNumber: e.OrderNumber,
		Items:       items,
		Total:       e.Total,
		Status:      "PENDING",
		CreatedAt:   e.Timestamp,
		UpdatedAt:   e.Timestamp,
	}

	opts := options.Update().SetUpsert(true)
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.OrderID}, bson.M{"$set": model}, opts)
	if err != nil {
		return fmt.Errorf("failed to project order placed: %w", err)
	}
	return nil
}

// HandleOrderCompleted marks the order view completed
func (p *MongoOrderProjection) HandleOrderCompleted(ctx context.Context, e *event.OrderCompleted) error {
	update := bson.M{"$set": bson.M{
		"status":     "COMPLETED",
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.OrderID}, update)
	if err != nil {
		return fmt.Errorf("failed to project order completion: %w", err)
	}
	return nil
}

// HandleOrderFailed marks the order view failed
func (p *MongoOrderProjection) HandleOrderFailed(ctx context.Context, e *event.OrderFailed) error {
	update := bson.M{"$set": bson.M{
		"status":     "FAILED",
		"reason":     e.Reason,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.OrderID}, update)
	if err != nil {
		return fmt.Errorf("failed to project order failure: %w", err)
	}
	return nil
}

// HandleOrderCancelled marks the order view cancelled
func (p *MongoOrderProjection) HandleOrderCancelled(ctx context.Context, e *event.OrderCancelled) error {
	update := bson.M{"$set": bson.M{
		"status":     "CANCELLED",
		"reason":     e.Reason,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.OrderID}, update)
	if err != nil {
		return fmt.Errorf("failed to project order cancellation: %w", err)
	}
	return nil
}
