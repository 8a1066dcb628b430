package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/api/metrics"
	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

// PaymentHandler bridges the cart to the hosted checkout flow.
type PaymentHandler struct {
	service ports.CheckoutService
}

func NewPaymentHandler(service ports.CheckoutService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type checkoutProductRequest struct {
	ID       string  `json:"id"       validate:"required"`
	Name     string  `json:"name"     validate:"required"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

type createCheckoutSessionRequest struct {
	Products   []checkoutProductRequest `json:"products"    validate:"required,dive"`
	CouponCode string                   `json:"coupon_code"`
}

type createCheckoutSessionResponse struct {
	ID          string  `json:"id"`
	TotalAmount float64 `json:"total_amount"`
}

type checkoutSuccessRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type checkoutSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

// CreateSession opens a hosted checkout session for the submitted cart.
//
// @Summary      Create a checkout session
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createCheckoutSessionRequest  true  "Cart contents and optional coupon"
// @Success      200   {object}  createCheckoutSessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/payments/create-checkout-session [post]
func (h *PaymentHandler) CreateSession(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.CheckoutItemInput, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, ports.CheckoutItemInput{
			ID:       p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}

	result, err := h.service.CreateSession(c.Request().Context(), user.ID, items, req.CouponCode)
	if err != nil {
		return err
	}

	discounted := "false"
	if req.CouponCode != "" {
		discounted = "true"
	}
	metrics.CheckoutSessionsTotal.WithLabelValues(discounted).Inc()

	return c.JSON(http.StatusOK, createCheckoutSessionResponse{
		ID:          result.SessionID,
		TotalAmount: result.TotalAmount,
	})
}

// ConfirmSuccess reconciles a completed payment session into an order.
// Reconciling the same session twice returns the existing order rather than
// creating a duplicate; the repeat is expected, not exceptional.
//
// @Summary      Confirm checkout success
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutSuccessRequest  true  "Session handle"
// @Success      200   {object}  checkoutSuccessResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/payments/checkout-success [post]
func (h *PaymentHandler) ConfirmSuccess(c echo.Context) error {
	var req checkoutSuccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.ReconcileSession(c.Request().Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderExists) && order != nil {
			metrics.OrdersReconciledTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusOK, checkoutSuccessResponse{
				Success: true,
				Message: "order already processed",
				OrderID: order.ID,
			})
		}
		metrics.OrdersReconciledTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.OrdersReconciledTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, checkoutSuccessResponse{
		Success: true,
		Message: "payment successful, order created",
		OrderID: order.ID,
	})
}
