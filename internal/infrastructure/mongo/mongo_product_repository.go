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

type productDocument struct {
	ID          string    `bson:"_id"`
	VendorID    string    `bson:"vendor_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	ImageUrl    string    `bson:"image_url"`
	Status      string    `bson:"status"`
	Version     int       `bson:"version"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// MongoProductRepository implements ProductRepository with MongoDB persistence
type MongoProductRepository struct {
	entityCollection *mongo.Collection
	eventCollection  *mongo.Collection
	session          mongo.Session
}

// NewMongoProductRepository creates a new MongoDB product repository
func NewMongoProductRepository(database *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		entityCollection: database.Collection("products"),
		eventCollection:  database.Collection("product_events"),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoProductRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoProductRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoProductRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoProductRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save upserts the product's current state and appends its uncommitted events
func (r *MongoProductRepository) Save(ctx context.Context, product *aggregate.Product) error {
	ctxToUse := r.sessionContext(ctx)

	doc := productDocument{
		ID:          product.ID(),
		VendorID:    product.VendorID(),
		Name:        product.Name(),
		Description: product.Description(),
		Price:       product.Price(),
		ImageUrl:    product.ImageUrl(),
		Status:      string(product.Status()),
		Version:     product.Version(),
		CreatedAt:   product.CreatedAt(),
		UpdatedAt:   product.UpdatedAt(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.entityCollection.UpdateOne(ctxToUse, bson.M{"_id": product.ID()}, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	events := product.GetUncommittedEvents()
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
			return fmt.Errorf("failed to save product events: %w", err)
		}

		product.MarkEventsAsCommitted()
	}

	return nil
}

// GetByID retrieves a product aggregate by ID
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*aggregate.Product, error) {
	ctxToUse := r.sessionContext(ctx)

	var doc productDocument
	err := r.entityCollection.FindOne(ctxToUse, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return aggregate.ReconstructProduct(
		doc.ID,
		doc.VendorID,
		doc.Name,
		doc.Description,
		doc.Price,
		doc.ImageUrl,
		aggregate.ProductStatus(doc.Status),
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
