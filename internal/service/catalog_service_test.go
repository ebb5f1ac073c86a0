package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
)

// memCache is an in-memory ByteCache.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateBatch(ctx context.Context, categories []model.Category) ([]model.Category, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

// MockSubCategoryRepository is a mock implementation of SubCategoryRepository.
type MockSubCategoryRepository struct {
	mock.Mock
}

func (m *MockSubCategoryRepository) CreateBatch(ctx context.Context, subCategories []model.SubCategory) ([]model.SubCategory, error) {
	args := m.Called(ctx, subCategories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) List(ctx context.Context) ([]model.SubCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.SubCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubCategory), args.Error(1)
}

func (m *MockSubCategoryRepository) FindByID(ctx context.Context, id uint) (*model.SubCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubCategory), args.Error(1)
}

func TestCatalogService_ListCategories_CacheAside(t *testing.T) {
	repo := new(MockCategoryRepository)
	cache := newMemCache()
	stored := []model.Category{{ID: 1, Name: "Electronics"}, {ID: 2, Name: "Fashion"}}

	// one database hit populates the cache
	repo.On("List", mock.Anything).Return(stored, nil).Once()

	svc := NewCatalogService(repo, new(MockSubCategoryRepository), cache)

	first, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, stored, first)

	second, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, stored, second)

	repo.AssertExpectations(t)
}

func TestCatalogService_CreateCategories_MergesIntoCachedList(t *testing.T) {
	repo := new(MockCategoryRepository)
	cache := newMemCache()

	existing := []model.Category{{ID: 1, Name: "Electronics"}}
	payload, _ := json.Marshal(existing)
	cache.data["categories"] = payload

	created := []model.Category{{ID: 2, Name: "Fashion"}}
	repo.On("CreateBatch", mock.Anything, []model.Category{{Name: "Fashion"}}).Return(created, nil)

	svc := NewCatalogService(repo, new(MockSubCategoryRepository), cache)
	got, err := svc.CreateCategories(context.Background(), []string{"  Fashion  "})
	assert.NoError(t, err)
	assert.Equal(t, created, got)

	// the cached list now holds old and new rows, not just the new batch
	var merged []model.Category
	assert.NoError(t, json.Unmarshal(cache.data["categories"], &merged))
	assert.Equal(t, []model.Category{{ID: 1, Name: "Electronics"}, {ID: 2, Name: "Fashion"}}, merged)
}

func TestCatalogService_CreateCategories_ColdCacheStaysCold(t *testing.T) {
	repo := new(MockCategoryRepository)
	cache := newMemCache()

	created := []model.Category{{ID: 1, Name: "Electronics"}}
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(created, nil)

	svc := NewCatalogService(repo, new(MockSubCategoryRepository), cache)
	_, err := svc.CreateCategories(context.Background(), []string{"Electronics"})
	assert.NoError(t, err)

	// no cached list existed, so the write must not seed a partial one
	assert.NotContains(t, cache.data, "categories")
}

func TestCatalogService_CreateCategories_RejectsEmptyNames(t *testing.T) {
	svc := NewCatalogService(new(MockCategoryRepository), new(MockSubCategoryRepository), newMemCache())

	_, err := svc.CreateCategories(context.Background(), []string{"  ", ""})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.AsAPIError(err).Kind)
}

func TestCatalogService_CorruptCacheFallsBackToDatabase(t *testing.T) {
	repo := new(MockCategoryRepository)
	cache := newMemCache()
	cache.data["categories"] = []byte("{not json")

	stored := []model.Category{{ID: 1, Name: "Electronics"}}
	repo.On("List", mock.Anything).Return(stored, nil).Once()

	svc := NewCatalogService(repo, new(MockSubCategoryRepository), cache)
	got, err := svc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, stored, got)

	// the corrupt entry was replaced by the fresh list
	var cached []model.Category
	assert.NoError(t, json.Unmarshal(cache.data["categories"], &cached))
	assert.Equal(t, stored, cached)
}

func TestCatalogService_CreateSubCategories_UnknownCategory(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCatalogService(categories, new(MockSubCategoryRepository), newMemCache())
	_, err := svc.CreateSubCategories(context.Background(), 9, []string{"Mobiles"})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.AsAPIError(err).Kind)
}
