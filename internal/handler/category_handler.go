package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
	"raone/internal/service"
)

// CategoryHandler handles the category and sub-category endpoints.
type CategoryHandler struct {
	catalogService service.CatalogService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(catalogService service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

// CreateCategoriesRequest carries the category names to create.
type CreateCategoriesRequest struct {
	Names []string `json:"names" validate:"required,min=1"`
}

// CreateSubCategoriesRequest carries sub-category names for one category.
type CreateSubCategoriesRequest struct {
	CategoryID uint     `json:"categoryId" validate:"required"`
	Names      []string `json:"names" validate:"required,min=1"`
}

// CreateCategories godoc
// @Summary Create categories
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body CreateCategoriesRequest true "Category names"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /categories [post]
func (h *CategoryHandler) CreateCategories(c echo.Context) error {
	var req CreateCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	created, err := h.catalogService.CreateCategories(c.Request().Context(), req.Names)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "categories created successfully", created)
}

// ListCategories godoc
// @Summary List all categories
// @Tags catalog
// @Produce json
// @Success 200 {object} errors.Envelope
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "categories fetched successfully", categories)
}

// CreateSubCategories godoc
// @Summary Create sub-categories under a category
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body CreateSubCategoriesRequest true "Sub-category names"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /sub-categories [post]
func (h *CategoryHandler) CreateSubCategories(c echo.Context) error {
	var req CreateSubCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	created, err := h.catalogService.CreateSubCategories(c.Request().Context(), req.CategoryID, req.Names)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "sub-categories created successfully", created)
}

// ListSubCategories godoc
// @Summary List all sub-categories
// @Tags catalog
// @Produce json
// @Success 200 {object} errors.Envelope
// @Router /sub-categories [get]
func (h *CategoryHandler) ListSubCategories(c echo.Context) error {
	subCategories, err := h.catalogService.ListSubCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "sub-categories fetched successfully", subCategories)
}
