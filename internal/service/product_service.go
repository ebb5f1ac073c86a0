package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/repository"
	"raone/internal/storage"
)

const productFolder = "products"

// CreateProductInput carries a new product plus its image uploads.
type CreateProductInput struct {
	Title         string
	Description   string
	Price         float64
	Discount      float64
	Colors        []model.Color
	CategoryID    uint
	SubCategoryID uint
	DP            io.Reader
	Images        []io.Reader
}

// UpdateProductInput carries optional field changes; empty/zero means leave
// unchanged.
type UpdateProductInput struct {
	Title       string
	Description string
	Price       *float64
	Discount    *float64
}

// ProductService manages the product catalog for vendors and shoppers.
type ProductService interface {
	Create(ctx context.Context, owner *model.User, input CreateProductInput) (*model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Product, error)
	ListBySubCategory(ctx context.Context, subCategoryID uint) ([]model.Product, error)
	Update(ctx context.Context, user *model.User, id uint, input UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, user *model.User, id uint) error
	Search(ctx context.Context, keyword string) ([]model.Product, error)
}

type productService struct {
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	subCategories repository.SubCategoryRepository
	images        storage.ImageStore
}

// NewProductService creates a product service.
func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, subCategories repository.SubCategoryRepository, images storage.ImageStore) ProductService {
	return &productService{products: products, categories: categories, subCategories: subCategories, images: images}
}

func (s *productService) Create(ctx context.Context, owner *model.User, input CreateProductInput) (*model.Product, error) {
	if len(strings.TrimSpace(input.Title)) < 5 {
		return nil, apperr.Validation("title must be at least 5 characters long")
	}
	if len(strings.TrimSpace(input.Description)) < 10 {
		return nil, apperr.Validation("description must be at least 10 characters long")
	}
	if input.Price <= 0 {
		return nil, apperr.Validation("price must be greater than zero")
	}
	if input.DP == nil {
		return nil, apperr.Validation("please add an image for the product dp")
	}
	if len(input.Images) < 2 {
		return nil, apperr.Validation("please add at least 2 images for the product gallery")
	}

	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("please select a valid product category")
		}
		return nil, fmt.Errorf("load category: %w", err)
	}
	sub, err := s.subCategories.FindByID(ctx, input.SubCategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("please select a valid product sub-category")
		}
		return nil, fmt.Errorf("load sub-category: %w", err)
	}
	if sub.CategoryID != input.CategoryID {
		return nil, apperr.Validation("sub-category does not belong to the selected category")
	}

	if s.images == nil {
		return nil, apperr.Internal("image storage is not configured")
	}
	dp, err := s.images.Upload(ctx, input.DP, productFolder)
	if err != nil {
		return nil, apperr.Internal("couldn't upload product dp")
	}
	gallery := make([]model.Image, 0, len(input.Images))
	for _, file := range input.Images {
		img, err := s.images.Upload(ctx, file, productFolder)
		if err != nil {
			return nil, apperr.Internal("couldn't upload product images")
		}
		gallery = append(gallery, img)
	}

	product := &model.Product{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		Discount:      input.Discount,
		Colors:        input.Colors,
		DP:            dp,
		Images:        gallery,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		OwnerID:       owner.ID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) ListByCategory(ctx context.Context, categoryID uint) ([]model.Product, error) {
	return s.products.ListByCategory(ctx, categoryID)
}

func (s *productService) ListBySubCategory(ctx context.Context, subCategoryID uint) ([]model.Product, error) {
	return s.products.ListBySubCategory(ctx, subCategoryID)
}

func (s *productService) Update(ctx context.Context, user *model.User, id uint, input UpdateProductInput) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != user.ID && user.Role != model.RoleAdmin {
		return nil, apperr.Forbidden("only the owner can update the product")
	}

	fields := map[string]interface{}{}
	if v := strings.TrimSpace(input.Title); v != "" {
		if len(v) < 5 {
			return nil, apperr.Validation("title must be at least 5 characters long")
		}
		fields["title"] = v
	}
	if v := strings.TrimSpace(input.Description); v != "" {
		if len(v) < 10 {
			return nil, apperr.Validation("description must be at least 10 characters long")
		}
		fields["description"] = v
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperr.Validation("price must be greater than zero")
		}
		fields["price"] = *input.Price
	}
	if input.Discount != nil {
		fields["discount"] = *input.Discount
	}
	if len(fields) == 0 {
		return product, nil
	}

	if err := s.products.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a product and its stored images. Only the owner (or an
// admin) may delete; a failed asset cleanup aborts the delete so no orphan
// rows point at half-removed galleries.
func (s *productService) Delete(ctx context.Context, user *model.User, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if product.OwnerID != user.ID && user.Role != model.RoleAdmin {
		return apperr.Forbidden("only the owner can delete the product")
	}

	if s.images != nil {
		if !product.DP.Empty() {
			if err := s.images.Destroy(ctx, product.DP.PublicID); err != nil {
				return apperr.Internal("couldn't delete product images")
			}
		}
		for _, img := range product.Images {
			if err := s.images.Destroy(ctx, img.PublicID); err != nil {
				return apperr.Internal("couldn't delete product images")
			}
		}
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *productService) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.Validation("keyword is required to search")
	}
	results, err := s.products.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return results, nil
}
