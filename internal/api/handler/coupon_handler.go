package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/core/ports"
)

// CouponHandler handles coupon lookup and validation for the session user.
type CouponHandler struct {
	service ports.CouponService
}

func NewCouponHandler(service ports.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

type validateCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type validateCouponResponse struct {
	Message  string `json:"message"`
	Code     string `json:"code"`
	Discount int    `json:"discount"`
}

// Active returns the user's active coupon, or a null body when none exists.
//
// @Summary      Get the active coupon
// @Tags         coupons
// @Produce      json
// @Success      200  {object}  domain.Coupon
// @Failure      401  {object}  errorResponse
// @Router       /api/coupons [get]
func (h *CouponHandler) Active(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	coupon, err := h.service.ActiveFor(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coupon)
}

// Validate checks a coupon code for the session user.
//
// @Summary      Validate a coupon code
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        body  body      validateCouponRequest  true  "Coupon code"
// @Success      200   {object}  validateCouponResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/coupons/validate [post]
func (h *CouponHandler) Validate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req validateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	coupon, err := h.service.Validate(c.Request().Context(), req.Code, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, validateCouponResponse{
		Message:  "coupon is valid",
		Code:     coupon.Code,
		Discount: coupon.DiscountPercentage,
	})
}
