package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/repository"
)

// CartService manages a user's shopping cart.
type CartService interface {
	AddItem(ctx context.Context, user *model.User, productID uint) (*model.CartItem, error)
	RemoveItem(ctx context.Context, user *model.User, itemID uint) ([]model.CartItem, error)
	ListItems(ctx context.Context, user *model.User) ([]model.CartItem, error)
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) AddItem(ctx context.Context, user *model.User, productID uint) (*model.CartItem, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	item := &model.CartItem{ProductID: productID, UserID: user.ID}
	if err := s.carts.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return item, nil
}

// RemoveItem deletes one of the user's own cart entries and returns what is
// left in their cart.
func (s *cartService) RemoveItem(ctx context.Context, user *model.User, itemID uint) ([]model.CartItem, error) {
	item, err := s.carts.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("cart item not found")
		}
		return nil, fmt.Errorf("load cart item: %w", err)
	}
	if item.UserID != user.ID {
		return nil, apperr.Forbidden("you cannot perform this action")
	}

	if err := s.carts.Delete(ctx, itemID); err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	return s.carts.ListByUser(ctx, user.ID)
}

func (s *cartService) ListItems(ctx context.Context, user *model.User) ([]model.CartItem, error) {
	return s.carts.ListByUser(ctx, user.ID)
}
