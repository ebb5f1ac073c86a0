package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
	"raone/internal/middleware"
	"raone/internal/model"
	"raone/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest represents a new order.
type CreateOrderRequest struct {
	ProductID   uint   `json:"productId" validate:"required"`
	AddressID   uint   `json:"addressId" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	PaymentMode string `json:"paymentMode" validate:"required"`
}

// UpdateOrderRequest carries order status changes.
type UpdateOrderRequest struct {
	Status *string `json:"status"`
	IsPaid *bool   `json:"isPaid"`
}

// Create godoc
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	order, err := h.orderService.Create(c.Request().Context(), user, service.CreateOrderInput{
		ProductID:   req.ProductID,
		AddressID:   req.AddressID,
		Quantity:    req.Quantity,
		PaymentMode: model.PaymentMode(req.PaymentMode),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "order placed successfully", order)
}

// Update godoc
// @Summary Update an order's status or payment flag
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body UpdateOrderRequest true "Changes"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /orders/{id} [patch]
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	input := service.UpdateOrderInput{IsPaid: req.IsPaid}
	if req.Status != nil {
		status := model.OrderStatus(*req.Status)
		input.Status = &status
	}

	order, err := h.orderService.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "order updated successfully", order)
}

// Get godoc
// @Summary Get one order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	order, err := h.orderService.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "order fetched successfully", order)
}

// List godoc
// @Summary List the caller's orders (placed for customers, received for vendors)
// @Tags orders
// @Produce json
// @Success 200 {object} errors.Envelope
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	orders, err := h.orderService.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "orders fetched successfully", orders)
}
