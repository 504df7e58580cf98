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

type walletTransactionDocument struct {
	ID        string    `bson:"_id"`
	WalletID  string    `bson:"wallet_id"`
	Type      string    `bson:"type"`
	Status    string    `bson:"status"`
	Amount    float64   `bson:"amount"`
	Reference string    `bson:"reference,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

type walletDocument struct {
	ID        string    `bson:"_id"`
	VendorID  string    `bson:"vendor_id"`
	Balance   float64   `bson:"balance"`
	Version   int       `bson:"version"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoWalletRepository implements WalletRepository with MongoDB persistence.
// The wallet state and its ledger live in separate collections so the
// dashboard can scan transactions without loading whole wallets.
type MongoWalletRepository struct {
	entityCollection      *mongo.Collection
	transactionCollection *mongo.Collection
	eventCollection       *mongo.Collection
	session               mongo.Session
}

// NewMongoWalletRepository creates a new MongoDB wallet repository
func NewMongoWalletRepository(database *mongo.Database) *MongoWalletRepository {
	return &MongoWalletRepository{
		entityCollection:      database.Collection("wallets"),
		transactionCollection: database.Collection("wallet_transactions"),
		eventCollection:       database.Collection("wallet_events"),
	}
}

// SetTransaction implements TransactionalRepository
func (r *MongoWalletRepository) SetTransaction(tx interface{}) {
	if session, ok := tx.(mongo.Session); ok {
		r.session = session
	} else {
		r.session = nil
	}
}

// GetTransaction implements TransactionalRepository
func (r *MongoWalletRepository) GetTransaction() interface{} {
	return r.session
}

// IsTransactional implements TransactionalRepository
func (r *MongoWalletRepository) IsTransactional() bool {
	return r.session != nil
}

func (r *MongoWalletRepository) sessionContext(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// Save upserts the wallet state, its ledger entries and uncommitted events
func (r *MongoWalletRepository) Save(ctx context.Context, wallet *aggregate.Wallet) error {
	ctxToUse := r.sessionContext(ctx)

	doc := walletDocument{
		ID:        wallet.ID(),
		VendorID:  wallet.VendorID(),
		Balance:   wallet.Balance(),
		Version:   wallet.Version(),
		CreatedAt: wallet.CreatedAt(),
		UpdatedAt: wallet.UpdatedAt(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.entityCollection.UpdateOne(ctxToUse, bson.M{"_id": wallet.ID()}, bson.M{"$set": doc}, opts)
	if err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}

	// Ledger entries are upserted individually; status transitions rewrite
	// the same document
	for _, tx := range wallet.Transactions() {
		txDoc := walletTransactionDocument{
			ID:        tx.ID,
			WalletID:  tx.WalletID,
			Type:      string(tx.Type),
			Status:    string(tx.Status),
			Amount:    tx.Amount,
			Reference: tx.Reference,
			CreatedAt: tx.CreatedAt,
		}
		_, err := r.transactionCollection.UpdateOne(ctxToUse, bson.M{"_id": tx.ID}, bson.M{"$set": txDoc}, opts)
		if err != nil {
			return fmt.Errorf("failed to save wallet transaction: %w", err)
		}
	}

	events := wallet.GetUncommittedEvents()
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
			return fmt.Errorf("failed to save wallet events: %w", err)
		}

		wallet.MarkEventsAsCommitted()
	}

	return nil
}

// GetByID retrieves a wallet aggregate with its ledger by ID
func (r *MongoWalletRepository) GetByID(ctx context.Context, id string) (*aggregate.Wallet, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByVendorID retrieves the wallet belonging to a vendor
func (r *MongoWalletRepository) GetByVendorID(ctx context.Context, vendorID string) (*aggregate.Wallet, error) {
	return r.findOne(ctx, bson.M{"vendor_id": vendorID})
}

func (r *MongoWalletRepository) findOne(ctx context.Context, filter bson.M) (*aggregate.Wallet, error) {
	ctxToUse := r.sessionContext(ctx)

	var doc walletDocument
	err := r.entityCollection.FindOne(ctxToUse, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("wallet not found")
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.transactionCollection.Find(ctxToUse, bson.M{"wallet_id": doc.ID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet transactions: %w", err)
	}
	defer cursor.Close(ctxToUse)

	var transactions []aggregate.WalletTransaction
	for cursor.Next(ctxToUse) {
		var txDoc walletTransactionDocument
		if err := cursor.Decode(&txDoc); err != nil {
			return nil, fmt.Errorf("failed to decode wallet transaction: %w", err)
		}
		transactions = append(transactions, aggregate.WalletTransaction{
			ID:        txDoc.ID,
			WalletID:  txDoc.WalletID,
			Type:      aggregate.TransactionType(txDoc.Type),
			Status:    aggregate.TransactionStatus(txDoc.Status),
			Amount:    txDoc.Amount,
			Reference: txDoc.Reference,
			CreatedAt: txDoc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallet transactions: %w", err)
	}

	return aggregate.ReconstructWallet(
		doc.ID,
		doc.VendorID,
		doc.Balance,
		transactions,
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
