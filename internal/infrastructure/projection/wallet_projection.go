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

// WalletReadModel is the denormalized wallet view served to queries
type WalletReadModel struct {
	ID        string    `bson:"_id" json:"id"`
	VendorID  string    `bson:"vendor_id" json:"vendorId"`
	Balance   float64   `bson:"balance" json:"balance"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// WalletTransactionReadModel is one ledger entry in the wallet view
type WalletTransactionReadModel struct {
	ID        string    `bson:"_id" json:"id"`
	WalletID  string    `bson:"wallet_id" json:"walletId"`
	Type      string    `bson:"type" json:"type"`
	Status    string    `bson:"status" json:"status"`
	Amount    float64   `bson:"amount" json:"amount"`
	Reference string    `bson:"reference,omitempty" json:"reference,omitempty"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MongoWalletProjection maintains the wallet and ledger view collections
type MongoWalletProjection struct {
	walletCollection      *mongo.Collection
	transactionCollection *mongo.Collection
}

// NewMongoWalletProjection creates a new wallet projection
func NewMongoWalletProjection(db *mongo.Database) *MongoWalletProjection {
	p := &MongoWalletProjection{
		walletCollection:      db.Collection("wallet_views"),
		transactionCollection: db.Collection("wallet_transaction_views"),
	}

	walletIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendor_id", Value: 1}}},
	}
	if _, err := p.walletCollection.Indexes().CreateMany(context.Background(), walletIndexes); err != nil {
		fmt.Printf("Warning: failed to create wallet view indexes: %v\n", err)
	}

	txIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "wallet_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := p.transactionCollection.Indexes().CreateMany(context.Background(), txIndexes); err != nil {
		fmt.Printf("Warning: failed to create wallet transaction view indexes: %v\n", err)
	}

	return p
}

// GetByVendorID returns the wallet view for a vendor
func (p *MongoWalletProjection) GetByVendorID(ctx context.Context, vendorID string) (interface{}, error) {
	var model WalletReadModel
	err := p.walletCollection.FindOne(ctx, bson.M{"vendor_id": vendorID}).Decode(&model)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("wallet not found")
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &model, nil
}

// ListTransactions returns a wallet's ledger entries, newest first
func (p *MongoWalletProjection) ListTransactions(ctx context.Context, walletID string, offset, limit int) ([]interface{}, error) {
	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := p.transactionCollection.Find(ctx, bson.M{"wallet_id": walletID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var results []interface{}
	for cursor.Next(ctx) {
		var model WalletTransactionReadModel
		if err := cursor.Decode(&model); err != nil {
			return nil, fmt.Errorf("failed to decode wallet transaction view: %w", err)
		}
		results = append(results, &model)
	}
	return results, cursor.Err()
}

// HandleWalletOpened inserts the initial wallet view with a zero balance
func (p *MongoWalletProjection) HandleWalletOpened(ctx context.Context, e *event.WalletOpened) error {
	model := WalletReadModel{
		ID:        e.WalletID,
		VendorID:  e.VendorID,
		Balance:   0,
		CreatedAt: e.Timestamp,
		UpdatedAt: e.Timestamp,
	}

	opts := options.Update().SetUpsert(true)
	_, err := p.walletCollection.UpdateOne(ctx, bson.M{"_id": e.WalletID}, bson.M{"$set": model}, opts)
	if err != nil {
		return fmt.Errorf("failed to project wallet opened: %w", err)
	}
	return nil
}

// HandleSaleCredited adds the sale amount to the balance and records the entry
func (p *MongoWalletProjection) HandleSaleCredited(ctx context.Context, e *event.SaleCredited) error {
	update := bson.M{
		"$inc": bson.M{"balance": e.Amount},
		"$set": bson.M{"updated_at": e.Timestamp},
	}
	if _, err := p.walletCollection.UpdateOne(ctx, bson.M{"_id": e.WalletID}, update); err != nil {
		return fmt.Errorf("failed to project sale credit: %w", err)
	}

	return p.upsertTransaction(ctx, WalletTransactionReadModel{
		ID:        e.TransactionID,
		WalletID:  e.WalletID,
		Type:      "SALE",
		Status:    "COMPLETED",
		Amount:    e.Amount,
		Reference: e.OrderID,
		CreatedAt: e.Timestamp,
		UpdatedAt: e.Timestamp,
	})
}

// HandleWithdrawalRequested reserves the amount and records a pending entry
func (p *MongoWalletProjection) HandleWithdrawalRequested(ctx context.Context, e *event.WithdrawalRequested) error {
	update := bson.M{
		"$inc": bson.M{"balance": -e.Amount},
		"$set": bson.M{"updated_at": e.Timestamp},
	}
	if _, err := p.walletCollection.UpdateOne(ctx, bson.M{"_id": e.WalletID}, update); err != nil {
		return fmt.Errorf("failed to project withdrawal request: %w", err)
	}

	return p.upsertTransaction(ctx, WalletTransactionReadModel{
		ID:        e.TransactionID,
		WalletID:  e.WalletID,
		Type:      "WITHDRAWAL",
		Status:    "PENDING",
		Amount:    e.Amount,
		CreatedAt: e.Timestamp,
		UpdatedAt: e.Timestamp,
	})
}

// HandleWithdrawalCompleted finalizes the pending ledger entry
func (p *MongoWalletProjection) HandleWithdrawalCompleted(ctx context.Context, e *event.WithdrawalCompleted) error {
	update := bson.M{"$set": bson.M{
		"status":     "COMPLETED",
		"reference":  e.TransferRef,
		"updated_at": e.Timestamp,
	}}
	_, err := p.transactionCollection.UpdateOne(ctx, bson.M{"_id": e.TransactionID}, update)
	if err != nil {
		return fmt.Errorf("failed to project withdrawal completion: %w", err)
	}
	return nil
}

// HandleWithdrawalFailed refunds the reserved amount and marks the entry failed
func (p *MongoWalletProjection) HandleWithdrawalFailed(ctx context.Context, e *event.WithdrawalFailed) error {
	walletUpdate := bson.M{
		"$inc": bson.M{"balance": e.Amount},
		"$set": bson.M{"updated_at": e.Timestamp},
	}
	if _, err := p.walletCollection.UpdateOne(ctx, bson.M{"_id": e.WalletID}, walletUpdate); err != nil {
		return fmt.Errorf("failed to project withdrawal refund: %w", err)
	}

	txUpdate := bson.M{"$set": bson.M{
		"status":     "FAILED",
		"reason":     e.Reason,
		"updated_at": e.Timestamp,
	}}
	if _, err := p.transactionCollection.UpdateOne(ctx, bson.M{"_id": e.TransactionID}, txUpdate); err != nil {
		return fmt.Errorf("failed to project withdrawal failure: %w", err)
	}
	return nil
}

func (p *MongoWalletProjection) upsertTransaction(ctx context.Context, model WalletTransactionReadModel) error {
	opts := options.Update().SetUpsert(true)
	_, err := p.transactionCollection.UpdateOne(ctx, bson.M{"_id": model.ID}, bson.M{"$set": model}, opts)
	if err != nil {
		return fmt.Errorf("failed to project wallet transaction: %w", err)
	}
	return nil
}
