package repository

import (
	"context"

	"gorm.io/gorm"

	"raone/internal/model"
)

// SubCategoryRepository defines persistence operations on sub-categories.
type SubCategoryRepository interface {
	CreateBatch(ctx context.Context, subCategories []model.SubCategory) ([]model.SubCategory, error)
	List(ctx context.Context) ([]model.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.SubCategory, error)
	FindByID(ctx context.Context, id uint) (*model.SubCategory, error)
}

type subCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository builds a GORM-backed repository.
func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) CreateBatch(ctx context.Context, subCategories []model.SubCategory) ([]model.SubCategory, error) {
	if err := r.db.WithContext(ctx).Create(&subCategories).Error; err != nil {
		return nil, err
	}
	return subCategories, nil
}

func (r *subCategoryRepository) List(ctx context.Context) ([]model.SubCategory, error) {
	var subCategories []model.SubCategory
	if err := r.db.WithContext(ctx).Find(&subCategories).Error; err != nil {
		return nil, err
	}
	return subCategories, nil
}

func (r *subCategoryRepository) ListByCategory(ctx context.Context, categoryID uint) ([]model.SubCategory, error) {
	var subCategories []model.SubCategory
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&subCategories).Error; err != nil {
		return nil, err
	}
	return subCategories, nil
}

func (r *subCategoryRepository) FindByID(ctx context.Context, id uint) (*model.SubCategory, error) {
	var subCategory model.SubCategory
	if err := r.db.WithContext(ctx).First(&subCategory, id).Error; err != nil {
		return nil, err
	}
	return &subCategory, nil
}
