package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
	"raone/internal/middleware"
	"raone/internal/model"
	"raone/internal/service"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// UpdateProductRequest carries optional product field changes.
type UpdateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
}

// Create godoc
// @Summary Create a product with its images
// @Tags products
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param price formData number true "Price"
// @Param dp formData file true "Display picture"
// @Param images formData file true "Gallery images (at least 2)"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	input, closeFiles, err := bindCreateProduct(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	owner := middleware.CurrentUser(c)
	product, err := h.productService.Create(c.Request().Context(), owner, *input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "product created successfully", product)
}

// Get godoc
// @Summary Get one product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "product fetched successfully", product)
}

// List godoc
// @Summary List products, optionally filtered by category or sub-category
// @Tags products
// @Produce json
// @Param category query int false "Category ID"
// @Param subCategory query int false "Sub-category ID"
// @Success 200 {object} errors.Envelope
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return apperr.Validation("invalid category id")
		}
		products, err := h.productService.ListByCategory(ctx, uint(id))
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "products fetched successfully", products)
	}
	if raw := c.QueryParam("subCategory"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return apperr.Validation("invalid sub-category id")
		}
		products, err := h.productService.ListBySubCategory(ctx, uint(id))
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "products fetched successfully", products)
	}

	products, err := h.productService.List(ctx)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "products fetched successfully", products)
}

// Update godoc
// @Summary Update a product's title, description, price or discount
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Fields to change"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	user := middleware.CurrentUser(c)
	product, err := h.productService.Update(c.Request().Context(), user, id, service.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "product updated successfully", product)
}

// Delete godoc
// @Summary Delete a product and its images
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	if err := h.productService.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "product deleted successfully", nil)
}

// Search godoc
// @Summary Full text search over product titles and descriptions
// @Tags products
// @Produce json
// @Param keyword query string true "Search keyword"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.productService.Search(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "products fetched successfully", products)
}

// bindCreateProduct reads the multipart product form: scalar fields, an
// optional JSON colors field, the display picture and the gallery files. The
// returned closer releases every opened file.
func bindCreateProduct(c echo.Context) (*service.CreateProductInput, func(), error) {
	noop := func() {}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return nil, noop, apperr.Validation("invalid price")
	}
	discount := 0.0
	if raw := c.FormValue("discount"); raw != "" {
		if discount, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, noop, apperr.Validation("invalid discount")
		}
	}
	categoryID, err := strconv.ParseUint(c.FormValue("categoryId"), 10, 64)
	if err != nil {
		return nil, noop, apperr.Validation("invalid category id")
	}
	subCategoryID, err := strconv.ParseUint(c.FormValue("subCategoryId"), 10, 64)
	if err != nil {
		return nil, noop, apperr.Validation("invalid sub-category id")
	}

	var colors []model.Color
	if raw := c.FormValue("colors"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &colors); err != nil {
			return nil, noop, apperr.Validation("invalid colors")
		}
	}

	dpHeader, err := c.FormFile("dp")
	if err != nil {
		return nil, noop, apperr.Validation("dp image is required")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, apperr.Validation("invalid multipart form")
	}

	var opened []multipart.File
	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	dp, err := dpHeader.Open()
	if err != nil {
		return nil, closeFiles, apperr.Validation("couldn't read dp image")
	}
	opened = append(opened, dp)

	var gallery []io.Reader
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			return nil, closeFiles, apperr.Validation("couldn't read gallery image")
		}
		opened = append(opened, file)
		gallery = append(gallery, file)
	}

	return &service.CreateProductInput{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Price:         price,
		Discount:      discount,
		Colors:        colors,
		CategoryID:    uint(categoryID),
		SubCategoryID: uint(subCategoryID),
		DP:            dp,
		Images:        gallery,
	}, closeFiles, nil
}
