package query

import "time"

// GetAdminDashboard query for the admin dashboard snapshot.
// Now and Location exist so callers (and tests) can pin the reference time
// and the month-bucketing timezone; both default sensibly when zero.
type GetAdminDashboard struct {
	Now      time.Time
	Location *time.Location
}

// ActivityType tags a recent-activity entry with its source record type
type ActivityType string

const (
	ActivityOrderCompleted   ActivityType = "order_completed"
	ActivityVendorRegistered ActivityType = "vendor_registered"
	ActivityProductSubmitted ActivityType = "product_submitted"
)

// Activity is one entry of the merged recent-activity feed
type Activity struct {
	ID      string       `json:"id"`
	Type    ActivityType `json:"type"`
	Message string       `json:"message"`
	Time    string       `json:"time"`
	RawTime time.Time    `json:"raw_time"`
}

// VendorRank is one row of the top-vendors panel. Products and Orders are
// not back-filled from other sources yet and always report 0.
type VendorRank struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Sales    float64 `json:"sales"`
	Products int     `json:"products"`
	Orders   int     `json:"orders"`
}

// GrowthPoint is one month bucket of the cumulative signup curve
type GrowthPoint struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

// Financials summarizes marketplace money flows
type Financials struct {
	Revenue    float64 `json:"revenue"`
	Payouts    float64 `json:"payouts"`
	Commission float64 `json:"commission"`
}

// HealthStatus is a coarse service health indicator
type HealthStatus string

const (
	HealthStatusHealthy  HealthStatus = "Healthy"
	HealthStatusDegraded HealthStatus = "Degraded"
	HealthStatusDown     HealthStatus = "Down"
)

// ServiceHealth reports status and latency (milliseconds) for one dependency
type ServiceHealth struct {
	Status  HealthStatus `json:"status"`
	Latency int64        `json:"latency"`
}

// SystemHealth groups the health indicators shown on the dashboard
type SystemHealth struct {
	Database ServiceHealth `json:"database"`
	API      ServiceHealth `json:"api"`
}

// DashboardSnapshot is the single aggregated response of one dashboard request
type DashboardSnapshot struct {
	TotalUsers         int64   `json:"total_users"`
	ActiveVendors      int64   `json:"active_vendors"`
	TotalProducts      int64   `json:"total_products"`
	SalesVolume        float64 `json:"sales_volume"`
	PendingVendors     int64   `json:"pending_vendors"`
	PendingProducts    int64   `json:"pending_products"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
	// PendingReports has no backing query; it stays null instead of
	// reporting a fabricated zero.
	PendingReports   *int64        `json:"pending_reports"`
	RecentActivities []Activity    `json:"recent_activities"`
	TopVendors       []VendorRank  `json:"top_vendors"`
	UserGrowth       []GrowthPoint `json:"user_growth"`
	Financials       Financials    `json:"financials"`
	SystemHealth     SystemHealth  `json:"system_health"`
}

// RecentOrder is a projection row for the activity feed. Total is a pointer
// because legacy order documents may lack the field; nil counts as zero.
type RecentOrder struct {
	ID          string
	OrderNumber string
	Total       *float64
	CreatedAt   time.Time
}

// RecentVendor is a projection row for the activity feed and the ranking fallback
type RecentVendor struct {
	ID        string
	StoreName string
	CreatedAt time.Time
}

// RecentProduct is a projection row for the activity feed
type RecentProduct struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// SaleTransaction is one sale-type wallet credit row
type SaleTransaction struct {
	WalletID  string
	Amount    *float64
	CreatedAt time.Time
}

// VendorRef resolves a wallet back to its owning vendor's display identity
type VendorRef struct {
	VendorID  string
	StoreName string
}
