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

type userDocument struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashed_password"`
	Role           string    `bson:"role"`
	Version        int       `bson:"version"`
	IsActive       bool      `bson:"is_active"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// MongoUserRepository implements UserRepository with MongoDB persistence
type MongoUserRepository struct {
	entityCollection *mongo.Collection
	eventCollection  *mongo.Collection
	session          mongo.Session
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(database *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		entityCollection: database.Collection("users"),
		eventCollection:  database.Collection("user_events"),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoUserRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoUserRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoUserRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoUserRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save upserts the user's current state and appends its uncommitted events
func (r *MongoUserRepository) Save(ctx context.Context, user *aggregate.User) error {
	ctxToUse := r.sessionContext(ctx)

	doc := userDocument{
		ID:             user.ID(),
		Name:           user.Name(),
		Email:          user.Email(),
		HashedPassword: user.HashedPassword(),
		Role:           string(user.Role()),
		Version:        user.Version(),
		IsActive:       user.IsActive(),
		CreatedAt:      user.CreatedAt(),
		UpdatedAt:      user.UpdatedAt(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.entityCollection.UpdateOne(ctxToUse, bson.M{"_id": user.ID()}, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	events := user.GetUncommittedEvents()
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
			return fmt.Errorf("failed to save user events: %w", err)
		}

		user.MarkEventsAsCommitted()
	}

	return nil
}

// GetByID retrieves a user aggregate by ID
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*aggregate.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_active": true})
}

// GetByEmail retrieves a user aggregate by email
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*aggregate.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "is_active": true})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*aggregate.User, error) {
	ctxToUse := r.sessionContext(ctx)

	var doc userDocument
	err := r.entityCollection.FindOne(ctxToUse, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return aggregate.ReconstructUser(
		doc.ID,
		doc.Name,
		doc.Email,
		doc.HashedPassword,
		aggregate.UserRole(doc.Role),
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
		doc.IsActive,
	), nil
}
