package query

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	recentListLimit   = 5
	topVendorLimit    = 5
	activityFeedLimit = 10
	growthMonths      = 6

	// Fetch durations at or above this mark the database Degraded
	degradedThreshold = 500 * time.Millisecond
)

// DashboardStore is the read capability set the aggregator needs. Every
// method is one independent query; the mongo implementation lives in
// internal/infrastructure/mongo.
type DashboardStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountApprovedVendors(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountPendingVendors(ctx context.Context) (int64, error)
	CountPendingProducts(ctx context.Context) (int64, error)
	CountPendingWithdrawals(ctx context.Context) (int64, error)
	CompletedOrderTotals(ctx context.Context) ([]*float64, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
	RecentVendors(ctx context.Context, limit int) ([]RecentVendor, error)
	RecentProducts(ctx context.Context, limit int) ([]RecentProduct, error)
	UserSignupTimes(ctx context.Context) ([]time.Time, error)
	SaleTransactions(ctx context.Context) ([]SaleTransaction, error)
	CompletedWithdrawalAmounts(ctx context.Context) ([]*float64, error)
	VendorsByWalletIDs(ctx context.Context, walletIDs []string) (map[string]VendorRef, error)
}

// AdminDashboardHandler computes the admin dashboard snapshot on each
// request; there is no cache, every call hits the store.
type AdminDashboardHandler struct {
	store      DashboardStore
	apiLatency func() int64
}

// NewAdminDashboardHandler creates the handler with the placeholder API
// latency source: a random value in [10,60) ms. No real API health probe
// exists yet; replace via SetAPILatencyProbe once one does.
func NewAdminDashboardHandler(store DashboardStore) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		store:      store,
		apiLatency: func() int64 { return 10 + rand.Int63n(50) },
	}
}

// SetAPILatencyProbe overrides the API latency source, mainly for tests
func (h *AdminDashboardHandler) SetAPILatencyProbe(probe func() int64) {
	h.apiLatency = probe
}

// Handle runs the four-stage aggregation: parallel fetch, metric derivation,
// vendor ranking, growth timeline. Everything after the fetch is a pure
// function of the fetched rows.
func (h *AdminDashboardHandler) Handle(ctx context.Context, query GetAdminDashboard) (*DashboardSnapshot, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc := query.Location
	if loc == nil {
		loc = time.UTC
	}

	fetched, elapsed, err := h.fetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard aggregation failed: %w", err)
	}

	totalRevenue := sumAmounts(fetched.orderTotals)
	totalEarnings := sumSaleAmounts(fetched.sales)
	totalPayouts := sumAmounts(fetched.withdrawalAmounts)
	commission := totalRevenue - totalEarnings
	if commission < 0 {
		// Vendor-recorded sales can transiently exceed order revenue when
		// wallet crediting races order completion; never report negative.
		commission = 0
	}

	topVendors, err := h.buildTopVendors(ctx, fetched.sales, fetched.recentVendors)
	if err != nil {
		return nil, fmt.Errorf("dashboard aggregation failed: %w", err)
	}

	dbStatus := HealthStatusHealthy
	if elapsed >= degradedThreshold {
		dbStatus = HealthStatusDegraded
	}

	return &DashboardSnapshot{
		TotalUsers:         fetched.totalUsers,
		ActiveVendors:      fetched.activeVendors,
		TotalProducts:      fetched.totalProducts,
		SalesVolume:        totalRevenue,
		PendingVendors:     fetched.pendingVendors,
		PendingProducts:    fetched.pendingProducts,
		PendingWithdrawals: fetched.pendingWithdrawals,
		PendingReports:     nil,
		RecentActivities:   buildRecentActivities(fetched.recentOrders, fetched.recentVendors, fetched.recentProducts),
		TopVendors:         topVendors,
		UserGrowth:         buildUserGrowth(fetched.signupTimes, now, loc),
		Financials: Financials{
			Revenue:    totalRevenue,
			Payouts:    totalPayouts,
			Commission: commission,
		},
		SystemHealth: SystemHealth{
			Database: ServiceHealth{Status: dbStatus, Latency: elapsed.Milliseconds()},
			API:      ServiceHealth{Status: HealthStatusHealthy, Latency: h.apiLatency()},
		},
	}, nil
}

// fetchResult holds one slot per query; slots are written by exactly one
// goroutine each, so no locking is needed.
type fetchResult struct {
	totalUsers         int64
	activeVendors      int64
	totalProducts      int64
	pendingVendors     int64
	pendingProducts    int64
	pendingWithdrawals int64
	orderTotals        []*float64
	recentOrders       []RecentOrder
	recentVendors      []RecentVendor
	recentProducts     []RecentProduct
	signupTimes        []time.Time
	sales              []SaleTransaction
	withdrawalAmounts  []*float64
}

// fetchAll fans out the fixed query batch and joins on completion. The batch
// is all-or-nothing: any failed query fails the whole stage. The returned
// duration feeds the database health indicator.
func (h *AdminDashboardHandler) fetchAll(ctx context.Context) (*fetchResult, time.Duration, error) {
	start := time.Now()
	res := &fetchResult{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.totalUsers, err = h.store.CountUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.activeVendors, err = h.store.CountApprovedVendors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.totalProducts, err = h.store.CountProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.pendingVendors, err = h.store.CountPendingVendors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.pendingProducts, err = h.store.CountPendingProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.pendingWithdrawals, err = h.store.CountPendingWithdrawals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.orderTotals, err = h.store.CompletedOrderTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.recentOrders, err = h.store.RecentOrders(gctx, recentListLimit)
		return err
	})
	g.Go(func() error {
		var err error
		res.recentVendors, err = h.store.RecentVendors(gctx, recentListLimit)
		return err
	})
	g.Go(func() error {
		var err error
		res.recentProducts, err = h.store.RecentProducts(gctx, recentListLimit)
		return err
	})
	g.Go(func() error {
		var err error
		res.signupTimes, err = h.store.UserSignupTimes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.sales, err = h.store.SaleTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.withdrawalAmounts, err = h.store.CompletedWithdrawalAmounts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, time.Since(start), err
	}
	return res, time.Since(start), nil
}

// buildTopVendors ranks wallets by summed sales and resolves the winners to
// vendor names. With no sales at all it falls back to the most recently
// registered vendors so the panel is not empty just because nothing sold yet.
func (h *AdminDashboardHandler) buildTopVendors(ctx context.Context, sales []SaleTransaction, recentVendors []RecentVendor) ([]VendorRank, error) {
	top := rankTopWallets(groupSalesByWallet(sales), topVendorLimit)

	if len(top) == 0 {
		ranks := make([]VendorRank, 0, len(recentVendors))
		for i, v := range recentVendors {
			if i == topVendorLimit {
				break
			}
			ranks = append(ranks, VendorRank{ID: v.ID, Name: v.StoreName})
		}
		return ranks, nil
	}

	walletIDs := make([]string, 0, len(top))
	for _, g := range top {
		walletIDs = append(walletIDs, g.walletID)
	}

	refs, err := h.store.VendorsByWalletIDs(ctx, walletIDs)
	if err != nil {
		return nil, err
	}

	ranks := make([]VendorRank, 0, len(top))
	for _, g := range top {
		if ref, ok := refs[g.walletID]; ok {
			ranks = append(ranks, VendorRank{ID: ref.VendorID, Name: ref.StoreName, Sales: g.total})
		} else {
			// Orphaned wallet reference; keep the row visible under a
			// placeholder rather than dropping the sales volume.
			ranks = append(ranks, VendorRank{ID: g.walletID, Name: "Unknown Vendor", Sales: g.total})
		}
	}
	return ranks, nil
}

// walletSales is one wallet's summed sale volume
type walletSales struct {
	walletID string
	total    float64
}

// groupSalesByWallet sums sale amounts per wallet, preserving first-seen
// order of wallet ids so the ranking is deterministic across runs.
func groupSalesByWallet(sales []SaleTransaction) []walletSales {
	index := make(map[string]int, len(sales))
	groups := make([]walletSales, 0, len(sales))
	for _, s := range sales {
		if s.WalletID == "" {
			continue
		}
		amount := 0.0
		if s.Amount != nil {
			amount = *s.Amount
		}
		if i, ok := index[s.WalletID]; ok {
			groups[i].total += amount
		} else {
			index[s.WalletID] = len(groups)
			groups = append(groups, walletSales{walletID: s.WalletID, total: amount})
		}
	}
	return groups
}

// rankTopWallets sorts by summed amount descending (stable, so ties keep
// grouping order) and takes the top n.
func rankTopWallets(groups []walletSales, n int) []walletSales {
	ranked := make([]walletSales, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].total > ranked[j].total
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// sumAmounts sums a list of optional amounts, treating nil as zero
func sumAmounts(amounts []*float64) float64 {
	var sum float64
	for _, a := range amounts {
		if a != nil {
			sum += *a
		}
	}
	return sum
}

func sumSaleAmounts(sales []SaleTransaction) float64 {
	var sum float64
	for _, s := range sales {
		if s.Amount != nil {
			sum += *s.Amount
		}
	}
	return sum
}

// buildRecentActivities merges the three recent-record lists into one feed,
// newest first, capped at activityFeedLimit entries.
func buildRecentActivities(orders []RecentOrder, vendors []RecentVendor, products []RecentProduct) []Activity {
	activities := make([]Activity, 0, len(orders)+len(vendors)+len(products))

	for _, o := range orders {
		total := 0.0
		if o.Total != nil {
			total = *o.Total
		}
		activities = append(activities, Activity{
			ID:      o.ID,
			Type:    ActivityOrderCompleted,
			Message: fmt.Sprintf("Order %s placed for %.2f", o.OrderNumber, total),
			Time:    o.CreatedAt.Format("Jan 2, 2006 15:04"),
			RawTime: o.CreatedAt,
		})
	}
	for _, v := range vendors {
		activities = append(activities, Activity{
			ID:      v.ID,
			Type:    ActivityVendorRegistered,
			Message: fmt.Sprintf("Vendor %s registered", v.StoreName),
			Time:    v.CreatedAt.Format("Jan 2, 2006 15:04"),
			RawTime: v.CreatedAt,
		})
	}
	for _, p := range products {
		activities = append(activities, Activity{
			ID:      p.ID,
			Type:    ActivityProductSubmitted,
			Message: fmt.Sprintf("Product %s submitted for review", p.Name),
			Time:    p.CreatedAt.Format("Jan 2, 2006 15:04"),
			RawTime: p.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].RawTime.After(activities[j].RawTime)
	})
	if len(activities) > activityFeedLimit {
		activities = activities[:activityFeedLimit]
	}
	return activities
}

// buildUserGrowth buckets signup timestamps into the trailing six calendar
// months (oldest first). Each bucket is the cumulative count of signups
// strictly before the first day of the month after the bucket month, so the
// curve never decreases.
func buildUserGrowth(signups []time.Time, now time.Time, loc *time.Location) []GrowthPoint {
	local := now.In(loc)
	currentMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	points := make([]GrowthPoint, 0, growthMonths)
	for i := growthMonths - 1; i >= 0; i-- {
		bucket := currentMonth.AddDate(0, -i, 0)
		cutoff := bucket.AddDate(0, 1, 0)
		count := 0
		for _, ts := range signups {
			if ts.In(loc).Before(cutoff) {
				count++
			}
		}
		points = append(points, GrowthPoint{Month: bucket.Format("Jan"), Users: count})
	}
	return points
}
