package repository

import (
	"context"

	"gorm.io/gorm"

	"raone/internal/model"
)

// ProductRepository defines persistence operations on products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Product, error)
	ListBySubCategory(ctx context.Context, subCategoryID uint) ([]model.Product, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, keyword string) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListBySubCategory(ctx context.Context, subCategoryID uint) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("sub_category_id = ?", subCategoryID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

// Search delegates keyword matching to the database's FULLTEXT index on
// title and description. Ranking is whatever MySQL natural language mode
// returns.
func (r *productRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("MATCH(title, description) AGAINST (? IN NATURAL LANGUAGE MODE)", keyword).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
