package ports

import (
	"context"
	"time"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// SalesTotals is the all-time aggregate over the order collection.
type SalesTotals struct {
	TotalSales   int64
	TotalRevenue float64
}

// DailySalesRow is one day of aggregated order activity. Date is formatted
// as 2006-01-02. Days with no orders do not appear; the analytics service
// zero-fills the calendar range.
type DailySalesRow struct {
	Date    string
	Sales   int64
	Revenue float64
}

// OrderRepository defines persistence and aggregation over orders.
type OrderRepository interface {
	// Create inserts the order. A duplicate stripe session id fails with
	// domain.ErrOrderExists (unique index is the enforcement point).
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Order, error)
	Totals(ctx context.Context) (SalesTotals, error)
	DailySales(ctx context.Context, start, end time.Time) ([]DailySalesRow, error)
}
