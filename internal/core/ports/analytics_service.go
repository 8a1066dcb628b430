package ports

import (
	"context"
	"time"
)

// AnalyticsSummary is the all-time store overview.
type AnalyticsSummary struct {
	Users        int64   `json:"users"`
	Products     int64   `json:"products"`
	TotalSales   int64   `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
}

// DailySalesPoint is one calendar day in a sales series. Days without
// activity appear with zero sales and revenue.
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Sales   int64   `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// AnalyticsService defines the read-only aggregation use cases.
type AnalyticsService interface {
	Summary(ctx context.Context) (*AnalyticsSummary, error)
	// DailySeries returns one entry per calendar day in [start, end],
	// ascending, zero-filled for days with no orders.
	DailySeries(ctx context.Context, start, end time.Time) ([]DailySalesPoint, error)
}
