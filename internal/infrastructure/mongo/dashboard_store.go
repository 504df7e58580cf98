package mongo

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/internal/application/query"
	"marketplace-backend/internal/domain/aggregate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDashboardStore implements query.DashboardStore against the live
// collections. Every method is a single read; the aggregator runs them
// concurrently, so no method may share cursors or sessions.
type MongoDashboardStore struct {
	users              *mongo.Collection
	vendors            *mongo.Collection
	products           *mongo.Collection
	orders             *mongo.Collection
	wallets            *mongo.Collection
	walletTransactions *mongo.Collection
}

// NewMongoDashboardStore creates a dashboard store over the given database
func NewMongoDashboardStore(database *mongo.Database) *MongoDashboardStore {
	return &MongoDashboardStore{
		users:              database.Collection("users"),
		vendors:            database.Collection("vendors"),
		products:           database.Collection("products"),
		orders:             database.Collection("orders"),
		wallets:            database.Collection("wallets"),
		walletTransactions: database.Collection("wallet_transactions"),
	}
}

// CountUsers counts active accounts
func (s *MongoDashboardStore) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.M{"is_active": true})
}

// CountApprovedVendors counts stores live on the marketplace
func (s *MongoDashboardStore) CountApprovedVendors(ctx context.Context) (int64, error) {
	return s.vendors.CountDocuments(ctx, bson.M{"status": aggregate.VendorStatusApproved})
}

// CountProducts counts all catalog entries regardless of moderation status
func (s *MongoDashboardStore) CountProducts(ctx context.Context) (int64, error) {
	return s.products.CountDocuments(ctx, bson.M{})
}

// CountPendingVendors counts store applications awaiting review
func (s *MongoDashboardStore) CountPendingVendors(ctx context.Context) (int64, error) {
	return s.vendors.CountDocuments(ctx, bson.M{"status": aggregate.VendorStatusPending})
}

// CountPendingProducts counts listings awaiting moderation
func (s *MongoDashboardStore) CountPendingProducts(ctx context.Context) (int64, error) {
	return s.products.CountDocuments(ctx, bson.M{"status": aggregate.ProductStatusPending})
}

// CountPendingWithdrawals counts cash-out requests not yet settled
func (s *MongoDashboardStore) CountPendingWithdrawals(ctx context.Context) (int64, error) {
	return s.walletTransactions.CountDocuments(ctx, bson.M{
		"type":   aggregate.TransactionTypeWithdrawal,
		"status": aggregate.TransactionStatusPending,
	})
}

// CompletedOrderTotals returns the total of every completed order
func (s *MongoDashboardStore) CompletedOrderTotals(ctx context.Context) ([]*float64, error) {
	opts := options.Find().SetProjection(bson.M{"total": 1})
	cursor, err := s.orders.Find(ctx, bson.M{"status": aggregate.PaymentStatusCompleted}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load order totals: %w", err)
	}
	defer cursor.Close(ctx)

	var totals []*float64
	for cursor.Next(ctx) {
		var row struct {
			Total *float64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode order total: %w", err)
		}
		totals = append(totals, row.Total)
	}
	return totals, cursor.Err()
}

// RecentOrders returns the most recently placed orders, newest first
func (s *MongoDashboardStore) RecentOrders(ctx context.Context, limit int) ([]query.RecentOrder, error) {
	opts := options.Find().
		SetProjection(bson.M{"order_number": 1, "total": 1, "created_at": 1}).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []query.RecentOrder
	for cursor.Next(ctx) {
		var row struct {
			ID          string    `bson:"_id"`
			OrderNumber string    `bson:"order_number"`
			Total       *float64  `bson:"total"`
			CreatedAt   time.Time `bson:"created_at"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode recent order: %w", err)
		}
		orders = append(orders, query.RecentOrder{
			ID:          row.ID,
			OrderNumber: row.OrderNumber,
			Total:       row.Total,
			CreatedAt:   row.CreatedAt,
		})
	}
	return orders, cursor.Err()
}

// RecentVendors returns the most recently registered vendors, newest first
func (s *MongoDashboardStore) RecentVendors(ctx context.Context, limit int) ([]query.RecentVendor, error) {
	opts := options.Find().
		SetProjection(bson.M{"store_name": 1, "created_at": 1}).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.vendors.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent vendors: %w", err)
	}
	defer cursor.Close(ctx)

	var vendors []query.RecentVendor
	for cursor.Next(ctx) {
		var row struct {
			ID        string    `bson:"_id"`
			StoreName string    `bson:"store_name"`
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode recent vendor: %w", err)
		}
		vendors = append(vendors, query.RecentVendor{
			ID:        row.ID,
			StoreName: row.StoreName,
			CreatedAt: row.CreatedAt,
		})
	}
	return vendors, cursor.Err()
}

// RecentProducts returns the most recently submitted products, newest first
func (s *MongoDashboardStore) RecentProducts(ctx context.Context, limit int) ([]query.RecentProduct, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "created_at": 1}).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []query.RecentProduct
	for cursor.Next(ctx) {
		var row struct {
			ID        string    `bson:"_id"`
			Name      string    `bson:"name"`
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode recent product: %w", err)
		}
		products = append(products, query.RecentProduct{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
		})
	}
	return products, cursor.Err()
}

// UserSignupTimes returns the signup timestamp of every account
func (s *MongoDashboardStore) UserSignupTimes(ctx context.Context) ([]time.Time, error) {
	opts := options.Find().SetProjection(bson.M{"created_at": 1})
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load signup times: %w", err)
	}
	defer cursor.Close(ctx)

	var times []time.Time
	for cursor.Next(ctx) {
		var row struct {
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode signup time: %w", err)
		}
		times = append(times, row.CreatedAt)
	}
	return times, cursor.Err()
}

// SaleTransactions returns every completed sale credit in the ledger
func (s *MongoDashboardStore) SaleTransactions(ctx context.Context) ([]query.SaleTransaction, error) {
	opts := options.Find().SetProjection(bson.M{"wallet_id": 1, "amount": 1, "created_at": 1})
	filter := bson.M{
		"type":   aggregate.TransactionTypeSale,
		"status": aggregate.TransactionStatusCompleted,
	}
	cursor, err := s.walletTransactions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var sales []query.SaleTransaction
	for cursor.Next(ctx) {
		var row struct {
			WalletID  string    `bson:"wallet_id"`
			Amount    *float64  `bson:"amount"`
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode sale transaction: %w", err)
		}
		sales = append(sales, query.SaleTransaction{
			WalletID:  row.WalletID,
			Amount:    row.Amount,
			CreatedAt: row.CreatedAt,
		})
	}
	return sales, cursor.Err()
}

// CompletedWithdrawalAmounts returns the amount of every settled withdrawal
func (s *MongoDashboardStore) CompletedWithdrawalAmounts(ctx context.Context) ([]*float64, error) {
	opts := options.Find().SetProjection(bson.M{"amount": 1})
	filter := bson.M{
		"type":   aggregate.TransactionTypeWithdrawal,
		"status": aggregate.TransactionStatusCompleted,
	}
	cursor, err := s.walletTransactions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawal amounts: %w", err)
	}
	defer cursor.Close(ctx)

	var amounts []*float64
	for cursor.Next(ctx) {
		var row struct {
			Amount *float64 `bson:"amount"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode withdrawal amount: %w", err)
		}
		amounts = append(amounts, row.Amount)
	}
	return amounts, cursor.Err()
}

// VendorsByWalletIDs resolves wallet ids to their owning vendor's identity
// via a two-step join: wallets to vendor ids, then vendor ids to store names.
func (s *MongoDashboardStore) VendorsByWalletIDs(ctx context.Context, walletIDs []string) (map[string]query.VendorRef, error) {
	refs := make(map[string]query.VendorRef, len(walletIDs))
	if len(walletIDs) == 0 {
		return refs, nil
	}

	walletCursor, err := s.wallets.Find(ctx, bson.M{"_id": bson.M{"$in": walletIDs}},
		options.Find().SetProjection(bson.M{"vendor_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to load wallets: %w", err)
	}
	defer walletCursor.Close(ctx)

	vendorByWallet := make(map[string]string, len(walletIDs))
	vendorIDs := make([]string, 0, len(walletIDs))
	for walletCursor.Next(ctx) {
		var row struct {
			ID       string `bson:"_id"`
			VendorID string `bson:"vendor_id"`
		}
		if err := walletCursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode wallet: %w", err)
		}
		vendorByWallet[row.ID] = row.VendorID
		vendorIDs = append(vendorIDs, row.VendorID)
	}
	if err := walletCursor.Err(); err != nil {
		return nil, err
	}
	if len(vendorIDs) == 0 {
		return refs, nil
	}

	vendorCursor, err := s.vendors.Find(ctx, bson.M{"_id": bson.M{"$in": vendorIDs}},
		options.Find().SetProjection(bson.M{"store_name": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to load vendors: %w", err)
	}
	defer vendorCursor.Close(ctx)

	nameByVendor := make(map[string]string, len(vendorIDs))
	for vendorCursor.Next(ctx) {
		var row struct {
			ID        string `bson:"_id"`
			StoreName string `bson:"store_name"`
		}
		if err := vendorCursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode vendor: %w", err)
		}
		nameByVendor[row.ID] = row.StoreName
	}
	if err := vendorCursor.Err(); err != nil {
		return nil, err
	}

	for walletID, vendorID := range vendorByWallet {
		if name, ok := nameByVendor[vendorID]; ok {
			refs[walletID] = query.VendorRef{VendorID: vendorID, StoreName: name}
		}
	}
	return refs, nil
}
