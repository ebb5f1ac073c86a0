package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
)

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uint) (*model.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func TestCartService_AddItem(t *testing.T) {
	user := &model.User{ID: 5}

	t.Run("adds an existing product", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		products.On("FindByID", mock.Anything, uint(10)).Return(&model.Product{ID: 10}, nil)
		carts.On("Create", mock.Anything, mock.AnythingOfType("*model.CartItem")).Return(nil)

		svc := NewCartService(carts, products)
		item, err := svc.AddItem(context.Background(), user, 10)
		assert.NoError(t, err)
		assert.Equal(t, uint(10), item.ProductID)
		assert.Equal(t, uint(5), item.UserID)
		carts.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		products.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCartService(carts, products)
		_, err := svc.AddItem(context.Background(), user, 10)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.AsAPIError(err).Kind)
		carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	user := &model.User{ID: 5}

	t.Run("removes own item and returns the rest", func(t *testing.T) {
		carts := new(MockCartRepository)
		remaining := []model.CartItem{{ID: 2, UserID: 5}}
		carts.On("FindByID", mock.Anything, uint(1)).Return(&model.CartItem{ID: 1, UserID: 5}, nil)
		carts.On("Delete", mock.Anything, uint(1)).Return(nil)
		carts.On("ListByUser", mock.Anything, uint(5)).Return(remaining, nil)

		svc := NewCartService(carts, new(MockProductRepository))
		got, err := svc.RemoveItem(context.Background(), user, 1)
		assert.NoError(t, err)
		assert.Equal(t, remaining, got)
		carts.AssertExpectations(t)
	})

	t.Run("cannot remove another user's item", func(t *testing.T) {
		carts := new(MockCartRepository)
		carts.On("FindByID", mock.Anything, uint(1)).Return(&model.CartItem{ID: 1, UserID: 99}, nil)

		svc := NewCartService(carts, new(MockProductRepository))
		_, err := svc.RemoveItem(context.Background(), user, 1)
		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.AsAPIError(err).Kind)
		carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
