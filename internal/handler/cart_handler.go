package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
	"raone/internal/middleware"
	"raone/internal/service"
)

// CartHandler handles shopping cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddCartItemRequest carries the product to add to the cart.
type AddCartItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
}

// AddItem godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddCartItemRequest true "Product"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /cart [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	item, err := h.cartService.AddItem(c.Request().Context(), user, req.ProductID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "added to cart successfully", item)
}

// RemoveItem godoc
// @Summary Remove an item from the cart
// @Tags cart
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /cart/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	remaining, err := h.cartService.RemoveItem(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "removed from cart successfully", remaining)
}

// ListItems godoc
// @Summary List the authenticated user's cart
// @Tags cart
// @Produce json
// @Success 200 {object} errors.Envelope
// @Router /cart [get]
func (h *CartHandler) ListItems(c echo.Context) error {
	user := middleware.CurrentUser(c)
	items, err := h.cartService.ListItems(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "cart fetched successfully", items)
}
