package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/queue"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, userID uint) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByVendor(ctx context.Context, userID uint) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListBySubCategory(ctx context.Context, subCategoryID uint) ([]model.Product, error) {
	args := m.Called(ctx, subCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockAddressRepository is a mock implementation of AddressRepository.
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, address *model.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uint) (*model.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddressRepository) ListByUser(ctx context.Context, userID uint) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Address), args.Error(1)
}

// capturingPublisher records every published event.
type capturingPublisher struct {
	events []queue.OrderEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, event queue.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

func TestOrderService_Create(t *testing.T) {
	customer := &model.User{ID: 5, Role: model.RoleCustomer}
	product := &model.Product{ID: 10, OwnerID: 3, Price: 999.0, Discount: 10.0}
	address := &model.Address{ID: 20, UserID: 5}

	t.Run("snapshots price and publishes event", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		addresses := new(MockAddressRepository)
		events := &capturingPublisher{}

		products.On("FindByID", mock.Anything, uint(10)).Return(product, nil)
		addresses.On("FindByID", mock.Anything, uint(20)).Return(address, nil)
		orders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Order).ID = 1
			}).Return(nil)

		svc := NewOrderService(orders, products, addresses, events)
		order, err := svc.Create(context.Background(), customer, CreateOrderInput{
			ProductID:   10,
			AddressID:   20,
			Quantity:    2,
			PaymentMode: model.PaymentCOD,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.OrderPending, order.Status)
		assert.Equal(t, 999.0, order.FinalPrice)
		assert.Equal(t, 10.0, order.Discount)
		assert.Equal(t, uint(5), order.OrderedBy)
		assert.Equal(t, uint(3), order.OwnedBy)
		assert.NotEmpty(t, order.Number)

		assert.Len(t, events.events, 1)
		assert.Equal(t, queue.EventOrderPlaced, events.events[0].Type)
		assert.Equal(t, order.Number, events.events[0].OrderNumber)

		orders.AssertExpectations(t)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockProductRepository), new(MockAddressRepository), nil)
		_, err := svc.Create(context.Background(), customer, CreateOrderInput{
			ProductID: 10, AddressID: 20, Quantity: 0, PaymentMode: model.PaymentCOD,
		})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.AsAPIError(err).Kind)
	})

	t.Run("rejects unknown payment mode", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockProductRepository), new(MockAddressRepository), nil)
		_, err := svc.Create(context.Background(), customer, CreateOrderInput{
			ProductID: 10, AddressID: 20, Quantity: 1, PaymentMode: "CHEQUE",
		})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.AsAPIError(err).Kind)
	})

	t.Run("rejects another user's address", func(t *testing.T) {
		products := new(MockProductRepository)
		addresses := new(MockAddressRepository)
		products.On("FindByID", mock.Anything, uint(10)).Return(product, nil)
		addresses.On("FindByID", mock.Anything, uint(20)).Return(&model.Address{ID: 20, UserID: 99}, nil)

		svc := NewOrderService(new(MockOrderRepository), products, addresses, nil)
		_, err := svc.Create(context.Background(), customer, CreateOrderInput{
			ProductID: 10, AddressID: 20, Quantity: 1, PaymentMode: model.PaymentUPI,
		})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.AsAPIError(err).Kind)
	})
}

func TestOrderService_Update(t *testing.T) {
	existing := &model.Order{ID: 1, Number: "n-1", Status: model.OrderPending}

	t.Run("valid status change publishes event", func(t *testing.T) {
		orders := new(MockOrderRepository)
		events := &capturingPublisher{}

		packed := *existing
		packed.Status = model.OrderPacked
		orders.On("FindByID", mock.Anything, uint(1)).Return(existing, nil).Once()
		orders.On("UpdateFields", mock.Anything, uint(1), map[string]interface{}{"status": model.OrderPacked}).Return(nil)
		orders.On("FindByID", mock.Anything, uint(1)).Return(&packed, nil).Once()

		svc := NewOrderService(orders, new(MockProductRepository), new(MockAddressRepository), events)
		status := model.OrderPacked
		order, err := svc.Update(context.Background(), 1, UpdateOrderInput{Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, model.OrderPacked, order.Status)
		assert.Len(t, events.events, 1)
		assert.Equal(t, queue.EventOrderStatusChanged, events.events[0].Type)
		orders.AssertExpectations(t)
	})

	t.Run("unknown status is rejected before any write", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)

		svc := NewOrderService(orders, new(MockProductRepository), new(MockAddressRepository), nil)
		status := model.OrderStatus("SHIPPED")
		_, err := svc.Update(context.Background(), 1, UpdateOrderInput{Status: &status})

		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.AsAPIError(err).Kind)
		orders.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no-op update returns the order unchanged", func(t *testing.T) {
		orders := new(MockOrderRepository)
		events := &capturingPublisher{}
		orders.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)

		svc := NewOrderService(orders, new(MockProductRepository), new(MockAddressRepository), events)
		order, err := svc.Update(context.Background(), 1, UpdateOrderInput{})

		assert.NoError(t, err)
		assert.Equal(t, existing, order)
		assert.Empty(t, events.events)
		orders.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_Get(t *testing.T) {
	order := &model.Order{ID: 1, OrderedBy: 5, OwnedBy: 3}

	tests := []struct {
		name     string
		user     *model.User
		wantKind apperr.Kind
	}{
		{name: "customer participant", user: &model.User{ID: 5, Role: model.RoleCustomer}},
		{name: "vendor participant", user: &model.User{ID: 3, Role: model.RoleVendor}},
		{name: "admin", user: &model.User{ID: 42, Role: model.RoleAdmin}},
		{name: "stranger", user: &model.User{ID: 99, Role: model.RoleCustomer}, wantKind: apperr.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderRepository)
			orders.On("FindByID", mock.Anything, uint(1)).Return(order, nil)

			svc := NewOrderService(orders, new(MockProductRepository), new(MockAddressRepository), nil)
			got, err := svc.Get(context.Background(), tt.user, 1)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.AsAPIError(err).Kind)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, order, got)
			}
		})
	}
}

func TestOrderService_List(t *testing.T) {
	t.Run("vendor sees received orders", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("ListByVendor", mock.Anything, uint(3)).Return([]model.Order{{ID: 1}}, nil)

		svc := NewOrderService(orders, new(MockProductRepository), new(MockAddressRepository), nil)
		got, err := svc.List(context.Background(), &model.User{ID: 3, Role: model.RoleVendor})
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		orders.AssertExpectations(t)
	})

	t.Run("customer sees placed orders", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("ListByCustomer", mock.Anything, uint(5)).Return([]model.Order{{ID: 2}}, nil)

		svc := NewOrderService(orders, new(MockProductRepository), new(MockAddressRepository), nil)
		got, err := svc.List(context.Background(), &model.User{ID: 5, Role: model.RoleCustomer})
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		orders.AssertExpectations(t)
	})
}

func TestOrderService_Create_ProductNotFound(t *testing.T) {
	products := new(MockProductRepository)
	products.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewOrderService(new(MockOrderRepository), products, new(MockAddressRepository), nil)
	_, err := svc.Create(context.Background(), &model.User{ID: 5}, CreateOrderInput{
		ProductID: 10, AddressID: 20, Quantity: 1, PaymentMode: model.PaymentCOD,
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.AsAPIError(err).Kind)
}
