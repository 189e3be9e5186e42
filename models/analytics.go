package models

// DashboardStats is the platform-wide snapshot returned by GET /api/admin/dashboard.
type DashboardStats struct {
	Stores     int64           `json:"stores"`
	Categories int64           `json:"categories"`
	Coupons    CouponCounts    `json:"coupons"`
	Users      int64           `json:"users"`
	Engagement EngagementTotal `json:"engagement"`
}

type CouponCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Expired  int64 `json:"expired"`
	Featured int64 `json:"featured"`
}

type EngagementTotal struct {
	TotalClicks int64 `json:"totalClicks"`
	TotalUsage  int64 `json:"totalUsage"`
}

// RecentActivity holds the newest records of each kind.
type RecentActivity struct {
	RecentCoupons    []CouponSummary `json:"recentCoupons"`
	RecentStores     []Store         `json:"recentStores"`
	RecentCategories []Category      `json:"recentCategories"`
}

// EntityAnalytics are the engagement metrics of one store or category.
type EntityAnalytics struct {
	TotalCoupons      int     `json:"totalCoupons"`
	TotalClicks       int64   `json:"totalClicks"`
	TotalUsage        int64   `json:"totalUsage"`
	ConversionRate    float64 `json:"conversionRate"`
	MostPopularCoupon *Coupon `json:"mostPopularCoupon"`
}

// AnalyticsType selects which coupon reference field scopes the analytics.
type AnalyticsType string

const (
	AnalyticsTypeStore    AnalyticsType = "store"
	AnalyticsTypeCategory AnalyticsType = "category"
)

// BulkStatusRequest is the payload for PUT /api/admin/coupons/bulk-status-update.
// Status is a pointer so an explicit false is distinguishable from a missing field.
type BulkStatusRequest struct {
	CouponIDs []string `json:"couponIds"`
	Status    *bool    `json:"status"`
}

// FeaturedRequest is the payload for PUT /api/admin/coupons/:id/featured.
type FeaturedRequest struct {
	Featured *bool `json:"featured"`
}
