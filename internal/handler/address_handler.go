package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
	"raone/internal/middleware"
	"raone/internal/service"
)

// AddressHandler handles delivery address endpoints.
type AddressHandler struct {
	addressService service.AddressService
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// AddAddressRequest represents a new delivery address.
type AddAddressRequest struct {
	Phone   string `json:"phone" validate:"required"`
	Pin     string `json:"pin" validate:"required"`
	Country string `json:"country" validate:"required"`
	State   string `json:"state" validate:"required"`
	City    string `json:"city" validate:"required"`
	Line1   string `json:"line1" validate:"required"`
	Line2   string `json:"line2"`
}

// Add godoc
// @Summary Add a delivery address
// @Tags addresses
// @Accept json
// @Produce json
// @Param request body AddAddressRequest true "Address"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /addresses [post]
func (h *AddressHandler) Add(c echo.Context) error {
	var req AddAddressRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	address, err := h.addressService.Add(c.Request().Context(), user, service.AddressInput{
		Phone:   req.Phone,
		Pin:     req.Pin,
		Country: req.Country,
		State:   req.State,
		City:    req.City,
		Line1:   req.Line1,
		Line2:   req.Line2,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "address added successfully", address)
}

// Remove godoc
// @Summary Remove one of your addresses
// @Tags addresses
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /addresses/{id} [delete]
func (h *AddressHandler) Remove(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	if err := h.addressService.Remove(c.Request().Context(), user, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "address removed successfully", nil)
}

// List godoc
// @Summary List your delivery addresses
// @Tags addresses
// @Produce json
// @Success 200 {object} errors.Envelope
// @Router /addresses [get]
func (h *AddressHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	addresses, err := h.addressService.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "addresses fetched successfully", addresses)
}
