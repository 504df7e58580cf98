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

// UserReadModel is the denormalized user view served to queries
type UserReadModel struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MongoUserProjection maintains the user read model collection
type MongoUserProjection struct {
	collection *mongo.Collection
}

// NewMongoUserProjection creates a new user projection
func NewMongoUserProjection(db *mongo.Database) *MongoUserProjection {
	p := &MongoUserProjection{
		collection: db.Collection("user_views"),
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := p.collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		fmt.Printf("Warning: failed to create user view indexes: %v\n", err)
	}

	return p
}

// GetByID returns a single user view by ID
func (p *MongoUserProjection) GetByID(ctx context.Context, id string) (interface{}, error) {
	var model UserReadModel
	err := p.collection.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&model)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &model, nil
}

// ListAll returns active user views ordered by newest first
func (p *MongoUserProjection) ListAll(ctx context.Context, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := p.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var results []interface{}
	for cursor.Next(ctx) {
		var model UserReadModel
		if err := cursor.Decode(&model); err != nil {
			return nil, fmt.Errorf("failed to decode user view: %w", err)
		}
		results = append(results, &model)
	}
	return results, cursor.Err()
}

// HandleUserCreated inserts the initial user view
func (p *MongoUserProjection) HandleUserCreated(ctx context.Context, e *event.UserCreated) error {
	model := UserReadModel{
		ID:        e.UserID,
		Name:      e.Name,
		Email:     e.Email,
		Role:      e.Role,
		IsActive:  e.IsActive,
		CreatedAt: e.Timestamp,
		UpdatedAt: e.Timestamp,
	}

	opts := options.Update().SetUpsert(true)
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.UserID}, bson.M{"$set": model}, opts)
	if err != nil {
		return fmt.Errorf("failed to project user created: %w", err)
	}
	return nil
}

// HandleUserProfileUpdated applies profile changes to the view
func (p *MongoUserProjection) HandleUserProfileUpdated(ctx context.Context, e *event.UserProfileUpdated) error {
	update := bson.M{"$set": bson.M{
		"name":       e.Name,
		"email":      e.Email,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to project user profile update: %w", err)
	}
	return nil
}

// HandleUserRoleUpdated applies role changes to the view
func (p *MongoUserProjection) HandleUserRoleUpdated(ctx context.Context, e *event.UserRoleUpdated) error {
	update := bson.M{"$set": bson.M{
		"role":       e.Role,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to project user role update: %w", err)
	}
	return nil
}

// HandleUserDeleted soft deletes the user view
func (p *MongoUserProjection) HandleUserDeleted(ctx context.Context, e *event.UserDeleted) error {
	update := bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": e.Timestamp,
	}}
	_, err := p.collection.UpdateOne(ctx, bson.M{"_id": e.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to project user deletion: %w", err)
	}
	return nil
}
