package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/queue"
	"raone/internal/repository"
)

// CreateOrderInput carries a new order request.
type CreateOrderInput struct {
	ProductID   uint
	AddressID   uint
	Quantity    int
	PaymentMode model.PaymentMode
}

// UpdateOrderInput carries the mutable order fields; nil means leave
// unchanged.
type UpdateOrderInput struct {
	Status *model.OrderStatus
	IsPaid *bool
}

// OrderService manages order placement and fulfillment status.
type OrderService interface {
	Create(ctx context.Context, user *model.User, input CreateOrderInput) (*model.Order, error)
	Update(ctx context.Context, id uint, input UpdateOrderInput) (*model.Order, error)
	Get(ctx context.Context, user *model.User, id uint) (*model.Order, error)
	List(ctx context.Context, user *model.User) ([]model.Order, error)
}

type orderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	addresses repository.AddressRepository
	events    queue.EventPublisher
}

// NewOrderService creates an order service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, addresses repository.AddressRepository, events queue.EventPublisher) OrderService {
	return &orderService{orders: orders, products: products, addresses: addresses, events: events}
}

// Create places an order, snapshotting price and discount from the product
// at order time so later catalog edits don't rewrite history.
func (s *orderService) Create(ctx context.Context, user *model.User, input CreateOrderInput) (*model.Order, error) {
	if input.Quantity < 1 {
		return nil, apperr.Validation("minimum 1 quantity required")
	}
	if !model.ValidPaymentMode(input.PaymentMode) {
		return nil, apperr.Validation("payment mode must be UPI, CARD or COD")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found to create order")
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	address, err := s.addresses.FindByID(ctx, input.AddressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid address id")
		}
		return nil, fmt.Errorf("load address: %w", err)
	}
	if address.UserID != user.ID {
		return nil, apperr.Forbidden("address does not belong to you")
	}

	order := &model.Order{
		Number:      uuid.NewString(),
		ProductID:   product.ID,
		OrderedBy:   user.ID,
		OwnedBy:     product.OwnerID,
		AddressID:   address.ID,
		Status:      model.OrderPending,
		PaymentMode: input.PaymentMode,
		Quantity:    input.Quantity,
		FinalPrice:  product.Price,
		Discount:    product.Discount,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, queue.EventOrderPlaced, order)
	return order, nil
}

// Update changes the fulfillment status and/or payment flag. An unknown
// status is rejected before any write.
func (s *orderService) Update(ctx context.Context, id uint, input UpdateOrderInput) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found to update")
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	fields := map[string]interface{}{}
	if input.Status != nil && *input.Status != order.Status {
		if !model.ValidOrderStatus(*input.Status) {
			return nil, apperr.Validation("order status can be PENDING, PACKED, OUT FOR DELIVERY, DELIVERED, CANCELLED or RETURNED")
		}
		fields["status"] = *input.Status
	}
	if input.IsPaid != nil && *input.IsPaid != order.IsPaid {
		fields["is_paid"] = *input.IsPaid
	}
	if len(fields) == 0 {
		return order, nil
	}

	if err := s.orders.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	updated, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	s.publish(ctx, queue.EventOrderStatusChanged, updated)
	return updated, nil
}

// Get returns an order to one of its participants (customer, vendor, admin).
func (s *orderService) Get(ctx context.Context, user *model.User, id uint) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.OrderedBy != user.ID && order.OwnedBy != user.ID && user.Role != model.RoleAdmin {
		return nil, apperr.Forbidden("you are not allowed to view this order")
	}
	return order, nil
}

// List returns the orders a vendor owns or a customer placed.
func (s *orderService) List(ctx context.Context, user *model.User) ([]model.Order, error) {
	if user.Role == model.RoleVendor {
		return s.orders.ListByVendor(ctx, user.ID)
	}
	return s.orders.ListByCustomer(ctx, user.ID)
}

// publish sends an order event best-effort; a broker outage never fails the
// order.
func (s *orderService) publish(ctx context.Context, eventType string, order *model.Order) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, queue.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		ProductID:   order.ProductID,
		OrderedBy:   order.OrderedBy,
		OwnedBy:     order.OwnedBy,
		Status:      string(order.Status),
		IsPaid:      order.IsPaid,
		Quantity:    order.Quantity,
		FinalPrice:  order.FinalPrice,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("order: publish %s event for order %d: %v", eventType, order.ID, err)
	}
}
