package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/core/ports"
)

// dailySeriesDays is the default window for the sales series.
const dailySeriesDays = 7

// AnalyticsHandler serves the read-only sales overview. Admin only.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

type analyticsResponse struct {
	AnalyticsData  *ports.AnalyticsSummary `json:"analytics_data"`
	DailySalesData []ports.DailySalesPoint `json:"daily_sales_data"`
}

// Overview returns the all-time summary plus the last seven days of sales,
// zero-filled for days with no orders.
//
// @Summary      Get the sales overview
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  analyticsResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.service.Summary(ctx)
	if err != nil {
		return err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(dailySeriesDays - 1))
	series, err := h.service.DailySeries(ctx, start, end)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analyticsResponse{
		AnalyticsData:  summary,
		DailySalesData: series,
	})
}
