package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/repository"
)

// Cache keys for the catalog read path.
const (
	categoriesKey    = "categories"
	subCategoriesKey = "sub_categories"
)

// ByteCache is the subset of the redis wrapper the catalog service needs.
type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogService manages categories and sub-categories with a cache-aside
// list on top. Reads serve the cached list and populate it on a miss; writes
// merge the new rows into an existing cached list instead of replacing it
// with only the newest batch.
type CatalogService interface {
	CreateCategories(ctx context.Context, names []string) ([]model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateSubCategories(ctx context.Context, categoryID uint, names []string) ([]model.SubCategory, error)
	ListSubCategories(ctx context.Context) ([]model.SubCategory, error)
}

type catalogService struct {
	categories    repository.CategoryRepository
	subCategories repository.SubCategoryRepository
	cache         ByteCache
}

// NewCatalogService creates a catalog service.
func NewCatalogService(categories repository.CategoryRepository, subCategories repository.SubCategoryRepository, cache ByteCache) CatalogService {
	return &catalogService{categories: categories, subCategories: subCategories, cache: cache}
}

func (s *catalogService) CreateCategories(ctx context.Context, names []string) ([]model.Category, error) {
	cleaned := cleanNames(names)
	if len(cleaned) == 0 {
		return nil, apperr.Validation("add at least one name")
	}

	toCreate := make([]model.Category, 0, len(cleaned))
	for _, name := range cleaned {
		toCreate = append(toCreate, model.Category{Name: name})
	}
	created, err := s.categories.CreateBatch(ctx, toCreate)
	if err != nil {
		return nil, fmt.Errorf("create categories: %w", err)
	}

	mergeCachedList(ctx, s.cache, categoriesKey, created)
	return created, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	if cached, ok := readCachedList[model.Category](ctx, s.cache, categoriesKey); ok {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	writeCachedList(ctx, s.cache, categoriesKey, categories)
	return categories, nil
}

func (s *catalogService) CreateSubCategories(ctx context.Context, categoryID uint, names []string) ([]model.SubCategory, error) {
	cleaned := cleanNames(names)
	if len(cleaned) == 0 {
		return nil, apperr.Validation("add at least one sub-category name")
	}

	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, fmt.Errorf("load category: %w", err)
	}

	toCreate := make([]model.SubCategory, 0, len(cleaned))
	for _, name := range cleaned {
		toCreate = append(toCreate, model.SubCategory{Name: name, CategoryID: categoryID})
	}
	created, err := s.subCategories.CreateBatch(ctx, toCreate)
	if err != nil {
		return nil, fmt.Errorf("create sub-categories: %w", err)
	}

	mergeCachedList(ctx, s.cache, subCategoriesKey, created)
	return created, nil
}

func (s *catalogService) ListSubCategories(ctx context.Context) ([]model.SubCategory, error) {
	if cached, ok := readCachedList[model.SubCategory](ctx, s.cache, subCategoriesKey); ok {
		return cached, nil
	}

	subCategories, err := s.subCategories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sub-categories: %w", err)
	}
	writeCachedList(ctx, s.cache, subCategoriesKey, subCategories)
	return subCategories, nil
}

func cleanNames(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// readCachedList returns the cached list and whether it was present.
func readCachedList[T any](ctx context.Context, cache ByteCache, key string) ([]T, bool) {
	data, err := cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		// corrupt entry: drop it and fall back to the database
		_ = cache.Delete(ctx, key)
		return nil, false
	}
	return list, true
}

func writeCachedList[T any](ctx context.Context, cache ByteCache, key string, list []T) {
	payload, err := json.Marshal(list)
	if err != nil {
		log.Printf("catalog: marshal %s cache: %v", key, err)
		return
	}
	if err := cache.Set(ctx, key, payload, 0); err != nil {
		log.Printf("catalog: write %s cache: %v", key, err)
	}
}

// mergeCachedList appends freshly created rows to an existing cached list.
// When no list is cached the key is left alone; the next read populates it
// from the database and cannot observe a partial list.
func mergeCachedList[T any](ctx context.Context, cache ByteCache, key string, created []T) {
	existing, ok := readCachedList[T](ctx, cache, key)
	if !ok {
		return
	}
	writeCachedList(ctx, cache, key, append(existing, created...))
}
