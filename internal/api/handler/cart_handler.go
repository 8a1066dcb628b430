package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/core/ports"
)

// CartHandler handles the session user's cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type removeFromCartRequest struct {
	// ProductID empty means clear the whole cart.
	ProductID string `json:"product_id"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// Items returns the cart joined with product details.
//
// @Summary      Get cart items
// @Tags         cart
// @Produce      json
// @Success      200  {array}  ports.CartProduct
// @Failure      401  {object}  errorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Items(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.service.Items(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add puts one unit of a product into the cart.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Product reference"
// @Success      200   {array}   domain.CartItem
// @Failure      404   {object}  errorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items, err := h.service.Add(c.Request().Context(), user, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Remove deletes one product from the cart, or everything when no product
// id is supplied.
//
// @Summary      Remove items from the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      removeFromCartRequest  false  "Product reference (omit to clear)"
// @Success      200   {array}   domain.CartItem
// @Router       /api/cart [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req removeFromCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	items, err := h.service.Remove(c.Request().Context(), user, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateQuantity sets the quantity of a cart entry; zero removes it.
//
// @Summary      Update a cart entry's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Product id"
// @Param        body  body      updateQuantityRequest  true  "New quantity"
// @Success      200   {array}   domain.CartItem
// @Failure      404   {object}  errorResponse
// @Router       /api/cart/{id} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items, err := h.service.UpdateQuantity(c.Request().Context(), user, c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
