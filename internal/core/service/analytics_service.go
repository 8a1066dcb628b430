package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/ports"
)

// AnalyticsService aggregates historical order data. Read-only.
type AnalyticsService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
	log      zerolog.Logger
}

func NewAnalyticsService(users ports.UserRepository, products ports.ProductRepository, orders ports.OrderRepository, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{users: users, products: products, orders: orders, log: log}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*ports.AnalyticsSummary, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.AnalyticsSummary{
		Users:        userCount,
		Products:     productCount,
		TotalSales:   totals.TotalSales,
		TotalRevenue: totals.TotalRevenue,
	}, nil
}

// DailySeries returns one point per calendar day in [start, end] ascending.
// The aggregation only yields days with activity; the gap is filled by
// generating the full range and left-joining.
func (s *AnalyticsService) DailySeries(ctx context.Context, start, end time.Time) ([]ports.DailySalesPoint, error) {
	rows, err := s.orders.DailySales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]ports.DailySalesRow, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	var series []ports.DailySalesPoint
	for day := start.UTC().Truncate(24 * time.Hour); !day.After(end.UTC()); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		point := ports.DailySalesPoint{Date: date}
		if row, ok := byDate[date]; ok {
			point.Sales = row.Sales
			point.Revenue = row.Revenue
		}
		series = append(series, point)
	}
	return series, nil
}
