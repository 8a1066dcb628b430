package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

func TestAnalyticsService_Summary(t *testing.T) {
	users := newStubUserRepo()
	_, _ = users.Create(context.Background(), &domain.User{Email: "a@example.com"})
	_, _ = users.Create(context.Background(), &domain.User{Email: "b@example.com"})

	products := newStubProductRepo(domain.Product{ID: "p1"}, domain.Product{ID: "p2"}, domain.Product{ID: "p3"})

	orders := newStubOrderRepo()
	_, _ = orders.Create(context.Background(), &domain.Order{StripeSessionID: "cs_1", TotalAmount: 22.50})
	_, _ = orders.Create(context.Background(), &domain.Order{StripeSessionID: "cs_2", TotalAmount: 10.00})

	svc := NewAnalyticsService(users, products, orders, zerolog.Nop())

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.Users != 2 || summary.Products != 3 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.TotalSales != 2 || summary.TotalRevenue != 32.50 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
}

func TestAnalyticsService_DailySeries_ZeroFills(t *testing.T) {
	orders := newStubOrderRepo()
	orders.rows = []ports.DailySalesRow{
		{Date: "2026-03-02", Sales: 3, Revenue: 120.00},
		{Date: "2026-03-04", Sales: 1, Revenue: 15.50},
	}
	svc := NewAnalyticsService(newStubUserRepo(), newStubProductRepo(), orders, zerolog.Nop())

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	series, err := svc.DailySeries(context.Background(), start, end)
	if err != nil {
		t.Fatalf("DailySeries returned error: %v", err)
	}
	if len(series) != 7 {
		t.Fatalf("expected 7 points, got %d", len(series))
	}
	if series[0].Date != "2026-03-01" || series[6].Date != "2026-03-07" {
		t.Fatalf("series not ascending over the range: %+v", series)
	}
	if series[1].Sales != 3 || series[1].Revenue != 120.00 {
		t.Fatalf("active day not joined: %+v", series[1])
	}
	if series[2].Sales != 0 || series[2].Revenue != 0 {
		t.Fatalf("quiet day not zero-filled: %+v", series[2])
	}
}

func TestAnalyticsService_DailySeries_EmptyStore(t *testing.T) {
	svc := NewAnalyticsService(newStubUserRepo(), newStubProductRepo(), newStubOrderRepo(), zerolog.Nop())

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series, err := svc.DailySeries(context.Background(), start, start.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("DailySeries returned error: %v", err)
	}
	if len(series) != 7 {
		t.Fatalf("expected 7 zero points, got %d", len(series))
	}
	for _, point := range series {
		if point.Sales != 0 || point.Revenue != 0 {
			t.Fatalf("expected all-zero series, got %+v", point)
		}
	}
}
