package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

// ProductHandler handles catalog reads and admin mutations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required,min=3"`
	Description string  `json:"description" validate:"required,min=10"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"    validate:"required"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
}

// List returns every catalog entry.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {object}  productsResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productsResponse{Products: products})
}

// Featured returns the featured products, served from cache when possible.
//
// @Summary      Get featured products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products/featured [get]
func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.service.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Recommended returns a random sample of products.
//
// @Summary      Get recommended products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products/recommended [get]
func (h *ProductHandler) Recommended(c echo.Context) error {
	products, err := h.service.Recommended(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ByCategory returns the products in one category.
//
// @Summary      Get products by category
// @Tags         products
// @Produce      json
// @Param        category  path  string  true  "Category name"
// @Success      200  {object}  productsResponse
// @Router       /api/products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	products, err := h.service.ByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productsResponse{Products: products})
}

// Create adds a catalog entry. Admin only.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Delete removes a catalog entry. Admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

// ToggleFeatured flips the featured flag. Admin only.
//
// @Summary      Toggle a product's featured flag
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) ToggleFeatured(c echo.Context) error {
	product, err := h.service.ToggleFeatured(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
