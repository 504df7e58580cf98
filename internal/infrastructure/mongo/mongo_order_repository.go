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

type orderItemDocument struct {
	ProductID string  `bson:"product_id"`
	VendorID  string  `bson:"vendor_id"`
	Name      string  `bson:"name"`
	UnitPrice float64 `bson:"unit_price"`
	Quantity  int     `bson:"quantity"`
}

type orderDocument struct {
	ID          string              `bson:"_id"`
	BuyerID     string              `bson:"buyer_id"`
	OrderNumber string              `bson:"order_number"`
	Items       []orderItemDocument `bson:"items"`
	Total       float64             `bson:"total"`
	Status      string              `bson:"status"`
	Version     int                 `bson:"version"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

// MongoOrderRepository implements OrderRepository with MongoDB persistence
type MongoOrderRepository struct {
	entityCollection *mongo.Collection
	eventCollection  *mongo.Collection
	session          mongo.Session
}

// NewMongoOrderRepository creates a new MongoDB order repository
func NewMongoOrderRepository(database *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		entityCollection: database.Collection("orders"),
		eventCollection:  database.Collection("order_events"),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoOrderRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoOrderRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoOrderRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoOrderRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save upserts the order's current state and appends its uncommitted events
func (r *MongoOrderRepository) Save(ctx context.Context, order *aggregate.Order) error {
	ctxToUse := r.sessionContext(ctx)

	items := make([]orderItemDocument, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, orderItemDocument{
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	doc := orderDocument{
		ID:          order.ID(),
		BuyerID:     order.BuyerID(),
		OrderNumber: order.OrderNumber(),
		Items:       items,
		Total:       order.Total(),
		Status:      string(order.Status()),
		Version:     order.Version(),
		CreatedAt:   order.CreatedAt(),
		UpdatedAt:   order.UpdatedAt(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.entityCollection.UpdateOne(ctxToUse, bson.M{"_id": order.ID()}, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	events := order.GetUncommittedEvents()
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
			return fmt.Errorf("failed to save order events: %w", err)
		}

		order.MarkEventsAsCommitted()
	}

	return nil
}

// GetByID retrieves an order aggregate by ID
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*aggregate.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByOrderNumber retrieves an order aggregate by its human-facing number
func (r *MongoOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*aggregate.Order, error) {
	return r.findOne(ctx, bson.M{"order_number": orderNumber})
}

func (r *MongoOrderRepository) findOne(ctx context.Context, filter bson.M) (*aggregate.Order, error) {
	ctxToUse := r.sessionContext(ctx)

	var doc orderDocument
	err := r.entityCollection.FindOne(ctxToUse, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items := make([]aggregate.OrderItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, aggregate.OrderItem{
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return aggregate.ReconstructOrder(
		doc.ID,
		doc.BuyerID,
		doc.OrderNumber,
		items,
		doc.Total,
		aggregate.PaymentStatus(doc.Status),
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
