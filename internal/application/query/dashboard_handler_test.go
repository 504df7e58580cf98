package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboardStore is an in-memory DashboardStore for tests
type fakeDashboardStore struct {
	users              int64
	approvedVendors    int64
	products           int64
	pendingVendors     int64
	pendingProducts    int64
	pendingWithdrawals int64
	orderTotals        []*float64
	recentOrders       []RecentOrder
	recentVendors      []RecentVendor
	recentProducts     []RecentProduct
	signups            []time.Time
	sales              []SaleTransaction
	withdrawals        []*float64
	vendorRefs         map[string]VendorRef

	countUsersErr error
}

func (f *fakeDashboardStore) CountUsers(ctx context.Context) (int64, error) {
	if f.countUsersErr != nil {
		return 0, f.countUsersErr
	}
	return f.users, nil
}

func (f *fakeDashboardStore) CountApprovedVendors(ctx context.Context) (int64, error) {
	return f.approvedVendors, nil
}

func (f *fakeDashboardStore) CountProducts(ctx context.Context) (int64, error) {
	return f.products, nil
}

func (f *fakeDashboardStore) CountPendingVendors(ctx context.Context) (int64, error) {
	return f.pendingVendors, nil
}

func (f *fakeDashboardStore) CountPendingProducts(ctx context.Context) (int64, error) {
	return f.pendingProducts, nil
}

func (f *fakeDashboardStore) CountPendingWithdrawals(ctx context.Context) (int64, error) {
	return f.pendingWithdrawals, nil
}

func (f *fakeDashboardStore) CompletedOrderTotals(ctx context.Context) ([]*float64, error) {
	return f.orderTotals, nil
}

func (f *fakeDashboardStore) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	if len(f.recentOrders) > limit {
		return f.recentOrders[:limit], nil
	}
	return f.recentOrders, nil
}

func (f *fakeDashboardStore) RecentVendors(ctx context.Context, limit int) ([]RecentVendor, error) {
	if len(f.recentVendors) > limit {
		return f.recentVendors[:limit], nil
	}
	return f.recentVendors, nil
}

func (f *fakeDashboardStore) RecentProducts(ctx context.Context, limit int) ([]RecentProduct, error) {
	if len(f.recentProducts) > limit {
		return f.recentProducts[:limit], nil
	}
	return f.recentProducts, nil
}

func (f *fakeDashboardStore) UserSignupTimes(ctx context.Context) ([]time.Time, error) {
	return f.signups, nil
}

func (f *fakeDashboardStore) SaleTransactions(ctx context.Context) ([]SaleTransaction, error) {
	return f.sales, nil
}

func (f *fakeDashboardStore) CompletedWithdrawalAmounts(ctx context.Context) ([]*float64, error) {
	return f.withdrawals, nil
}

func (f *fakeDashboardStore) VendorsByWalletIDs(ctx context.Context, walletIDs []string) (map[string]VendorRef, error) {
	refs := make(map[string]VendorRef)
	for _, id := range walletIDs {
		if ref, ok := f.vendorRefs[id]; ok {
			refs[id] = ref
		}
	}
	return refs, nil
}

func amount(v float64) *float64 {
	return &v
}

func pinnedHandler(store DashboardStore) *AdminDashboardHandler {
	h := NewAdminDashboardHandler(store)
	h.SetAPILatencyProbe(func() int64 { return 25 })
	return h
}

func fixedQuery() GetAdminDashboard {
	return GetAdminDashboard{
		Now:      time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		Location: time.UTC,
	}
}

func TestHandleSumsRevenueTreatingNilTotalsAsZero(t *testing.T) {
	store := &fakeDashboardStore{
		orderTotals: []*float64{amount(100), nil, amount(250.5), nil, amount(0)},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	assert.Equal(t, 350.5, snapshot.Financials.Revenue)
	assert.Equal(t, 350.5, snapshot.SalesVolume)
}

func TestHandleCommissionIsNeverNegative(t *testing.T) {
	store := &fakeDashboardStore{
		orderTotals: []*float64{amount(100)},
		sales: []SaleTransaction{
			{WalletID: "w1", Amount: amount(300)},
		},
		vendorRefs: map[string]VendorRef{
			"w1": {VendorID: "v1", StoreName: "Acme"},
		},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	assert.Equal(t, float64(0), snapshot.Financials.Commission)
}

func TestHandleCommissionIsRevenueMinusEarnings(t *testing.T) {
	store := &fakeDashboardStore{
		orderTotals: []*float64{amount(500)},
		sales: []SaleTransaction{
			{WalletID: "w1", Amount: amount(420)},
		},
		withdrawals: []*float64{amount(100), nil, amount(50)},
		vendorRefs: map[string]VendorRef{
			"w1": {VendorID: "v1", StoreName: "Acme"},
		},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	assert.Equal(t, float64(80), snapshot.Financials.Commission)
	assert.Equal(t, float64(150), snapshot.Financials.Payouts)
}

func TestHandleRanksTopVendorsBySummedSales(t *testing.T) {
	store := &fakeDashboardStore{
		sales: []SaleTransaction{
			{WalletID: "A", Amount: amount(100)},
			{WalletID: "B", Amount: amount(300)},
			{WalletID: "A", Amount: amount(50)},
		},
		vendorRefs: map[string]VendorRef{
			"A": {VendorID: "vendor-a", StoreName: "Alpha Goods"},
			"B": {VendorID: "vendor-b", StoreName: "Bravo Mart"},
		},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	require.Len(t, snapshot.TopVendors, 2)
	assert.Equal(t, "vendor-b", snapshot.TopVendors[0].ID)
	assert.Equal(t, "Bravo Mart", snapshot.TopVendors[0].Name)
	assert.Equal(t, float64(300), snapshot.TopVendors[0].Sales)
	assert.Equal(t, "vendor-a", snapshot.TopVendors[1].ID)
	assert.Equal(t, float64(150), snapshot.TopVendors[1].Sales)

	// Products and orders are not back-filled in the current computation
	assert.Zero(t, snapshot.TopVendors[0].Products)
	assert.Zero(t, snapshot.TopVendors[0].Orders)
}

func TestHandleCapsTopVendorsAtFive(t *testing.T) {
	store := &fakeDashboardStore{
		sales: []SaleTransaction{
			{WalletID: "w1", Amount: amount(10)},
			{WalletID: "w2", Amount: amount(20)},
			{WalletID: "w3", Amount: amount(30)},
			{WalletID: "w4", Amount: amount(40)},
			{WalletID: "w5", Amount: amount(50)},
			{WalletID: "w6", Amount: amount(60)},
			{WalletID: "w7", Amount: amount(70)},
		},
		vendorRefs: map[string]VendorRef{},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	require.Len(t, snapshot.TopVendors, 5)
	for i := 1; i < len(snapshot.TopVendors); i++ {
		assert.GreaterOrEqual(t, snapshot.TopVendors[i-1].Sales, snapshot.TopVendors[i].Sales)
	}
}

func TestHandleUnresolvableWalletGetsPlaceholderName(t *testing.T) {
	store := &fakeDashboardStore{
		sales: []SaleTransaction{
			{WalletID: "orphan", Amount: amount(90)},
		},
		vendorRefs: map[string]VendorRef{},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	require.Len(t, snapshot.TopVendors, 1)
	assert.Equal(t, "orphan", snapshot.TopVendors[0].ID)
	assert.Equal(t, "Unknown Vendor", snapshot.TopVendors[0].Name)
	assert.Equal(t, float64(90), snapshot.TopVendors[0].Sales)
}

func TestHandleFallsBackToRecentVendorsWithoutSales(t *testing.T) {
	store := &fakeDashboardStore{
		recentVendors: []RecentVendor{
			{ID: "v1", StoreName: "Fresh Store", CreatedAt: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
			{ID: "v2", StoreName: "Newer Store", CreatedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	require.Len(t, snapshot.TopVendors, 2)
	for _, rank := range snapshot.TopVendors {
		assert.Zero(t, rank.Sales)
		assert.Zero(t, rank.Products)
		assert.Zero(t, rank.Orders)
	}
	assert.Equal(t, "Fresh Store", snapshot.TopVendors[0].Name)
}

func TestHandleEmptySalesAndVendorsYieldsEmptyRanking(t *testing.T) {
	snapshot, err := pinnedHandler(&fakeDashboardStore{}).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	assert.Empty(t, snapshot.TopVendors)
}

func TestHandleUserGrowthAlwaysHasSixBuckets(t *testing.T) {
	tests := []struct {
		name    string
		signups []time.Time
	}{
		{name: "no signups", signups: nil},
		{name: "one signup", signups: []time.Time{time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)}},
		{
			name: "many signups",
			signups: func() []time.Time {
				var ts []time.Time
				for i := 0; i < 500; i++ {
					ts = append(ts, time.Date(2023, time.Month(1+i%12), 3, 0, 0, 0, 0, time.UTC))
				}
				return ts
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeDashboardStore{signups: tt.signups}
			snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
			require.NoError(t, err)
			assert.Len(t, snapshot.UserGrowth, 6)
		})
	}
}

func TestHandleUserGrowthIsCumulative(t *testing.T) {
	store := &fakeDashboardStore{
		signups: []time.Time{
			time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	require.Len(t, snapshot.UserGrowth, 6)
	labels := make([]string, 0, 6)
	for _, p := range snapshot.UserGrowth {
		labels = append(labels, p.Month)
	}
	assert.Equal(t, []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}, labels)

	counts := make([]int, 0, 6)
	for _, p := range snapshot.UserGrowth {
		counts = append(counts, p.Users)
	}
	assert.Equal(t, []int{0, 0, 0, 1, 3, 3}, counts)

	for i := 1; i < len(counts); i++ {
		assert.GreaterOrEqual(t, counts[i], counts[i-1])
	}
}

func TestHandleMergesRecentActivitiesNewestFirst(t *testing.T) {
	base := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeDashboardStore{
		recentOrders: []RecentOrder{
			{ID: "o1", OrderNumber: "ORD-1", Total: amount(100), CreatedAt: base.Add(9 * time.Hour)},
			{ID: "o2", OrderNumber: "ORD-2", Total: nil, CreatedAt: base.Add(5 * time.Hour)},
			{ID: "o3", OrderNumber: "ORD-3", Total: amount(30), CreatedAt: base.Add(1 * time.Hour)},
			{ID: "o4", OrderNumber: "ORD-4", Total: amount(40), CreatedAt: base.Add(2 * time.Hour)},
			{ID: "o5", OrderNumber: "ORD-5", Total: amount(50), CreatedAt: base.Add(3 * time.Hour)},
		},
		recentVendors: []RecentVendor{
			{ID: "v1", StoreName: "Acme", CreatedAt: base.Add(8 * time.Hour)},
			{ID: "v2", StoreName: "Borealis", CreatedAt: base.Add(6 * time.Hour)},
			{ID: "v3", StoreName: "Cumulus", CreatedAt: base.Add(4 * time.Hour)},
			{ID: "v4", StoreName: "Drift", CreatedAt: base.Add(30 * time.Minute)},
			{ID: "v5", StoreName: "Ember", CreatedAt: base.Add(45 * time.Minute)},
		},
		recentProducts: []RecentProduct{
			{ID: "p1", Name: "Widget", CreatedAt: base.Add(7 * time.Hour)},
			{ID: "p2", Name: "Gadget", CreatedAt: base.Add(90 * time.Minute)},
		},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	require.Len(t, snapshot.RecentActivities, 10)
	for i := 1; i < len(snapshot.RecentActivities); i++ {
		prev := snapshot.RecentActivities[i-1].RawTime
		cur := snapshot.RecentActivities[i].RawTime
		assert.True(t, prev.After(cur), "activities must be strictly newest first")
	}

	// Newest entries come from all three sources
	assert.Equal(t, ActivityOrderCompleted, snapshot.RecentActivities[0].Type)
	assert.Equal(t, ActivityVendorRegistered, snapshot.RecentActivities[1].Type)
	assert.Equal(t, ActivityProductSubmitted, snapshot.RecentActivities[2].Type)
}

func TestHandlePendingCountsAndReportsField(t *testing.T) {
	store := &fakeDashboardStore{
		users:              42,
		approvedVendors:    7,
		products:           120,
		pendingVendors:     3,
		pendingProducts:    9,
		pendingWithdrawals: 2,
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	assert.Equal(t, int64(42), snapshot.TotalUsers)
	assert.Equal(t, int64(7), snapshot.ActiveVendors)
	assert.Equal(t, int64(120), snapshot.TotalProducts)
	assert.Equal(t, int64(3), snapshot.PendingVendors)
	assert.Equal(t, int64(9), snapshot.PendingProducts)
	assert.Equal(t, int64(2), snapshot.PendingWithdrawals)

	// No reports source is wired up; the field must stay null, not zero
	assert.Nil(t, snapshot.PendingReports)
}

func TestHandleFetchFailureFailsWholeSnapshot(t *testing.T) {
	store := &fakeDashboardStore{
		countUsersErr: errors.New("connection reset"),
		orderTotals:   []*float64{amount(10)},
	}

	snapshot, err := pinnedHandler(store).Handle(context.Background(), fixedQuery())
	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestHandleIsDeterministicForSameBackingData(t *testing.T) {
	store := &fakeDashboardStore{
		users:           10,
		approvedVendors: 2,
		orderTotals:     []*float64{amount(100), amount(200)},
		sales: []SaleTransaction{
			{WalletID: "w1", Amount: amount(120)},
			{WalletID: "w2", Amount: amount(80)},
		},
		withdrawals: []*float64{amount(60)},
		vendorRefs: map[string]VendorRef{
			"w1": {VendorID: "v1", StoreName: "First"},
			"w2": {VendorID: "v2", StoreName: "Second"},
		},
		signups: []time.Time{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	h := pinnedHandler(store)
	first, err := h.Handle(context.Background(), fixedQuery())
	require.NoError(t, err)
	second, err := h.Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	// Wall-clock latency aside, derived metrics must match byte for byte
	first.SystemHealth = SystemHealth{}
	second.SystemHealth = SystemHealth{}
	assert.Equal(t, first, second)
}

func TestHandleSystemHealthUsesInjectedProbe(t *testing.T) {
	h := NewAdminDashboardHandler(&fakeDashboardStore{})
	h.SetAPILatencyProbe(func() int64 { return 42 })

	snapshot, err := h.Handle(context.Background(), fixedQuery())
	require.NoError(t, err)

	assert.Equal(t, int64(42), snapshot.SystemHealth.API.Latency)
	assert.Equal(t, HealthStatusHealthy, snapshot.SystemHealth.API.Status)
	assert.Equal(t, HealthStatusHealthy, snapshot.SystemHealth.Database.Status)
	assert.GreaterOrEqual(t, snapshot.SystemHealth.Database.Latency, int64(0))
}

func TestGroupSalesByWalletPreservesFirstSeenOrder(t *testing.T) {
	groups := groupSalesByWallet([]SaleTransaction{
		{WalletID: "c", Amount: amount(1)},
		{WalletID: "a", Amount: amount(2)},
		{WalletID: "c", Amount: amount(3)},
		{WalletID: "b", Amount: nil},
		{WalletID: "", Amount: amount(99)},
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "c", groups[0].walletID)
	assert.Equal(t, float64(4), groups[0].total)
	assert.Equal(t, "a", groups[1].walletID)
	assert.Equal(t, "b", groups[2].walletID)
	assert.Equal(t, float64(0), groups[2].total)
}

func TestRankTopWalletsBreaksTiesByGroupingOrder(t *testing.T) {
	ranked := rankTopWallets([]walletSales{
		{walletID: "x", total: 50},
		{walletID: "y", total: 50},
		{walletID: "z", total: 70},
	}, 5)

	require.Len(t, ranked, 3)
	assert.Equal(t, "z", ranked[0].walletID)
	assert.Equal(t, "x", ranked[1].walletID)
	assert.Equal(t, "y", ranked[2].walletID)
}
