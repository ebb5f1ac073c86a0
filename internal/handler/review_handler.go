package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
	"raone/internal/middleware"
	"raone/internal/service"
)

// ReviewHandler handles review and reply endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents a new product review.
type CreateReviewRequest struct {
	ProductID uint   `json:"productId" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
}

// CreateReplyRequest represents a reply to a review.
type CreateReplyRequest struct {
	ReviewID uint   `json:"reviewId" validate:"required"`
	Comment  string `json:"comment" validate:"required"`
}

// CreateReview godoc
// @Summary Review a product
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body CreateReviewRequest true "Review"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	review, err := h.reviewService.CreateReview(c.Request().Context(), user, req.ProductID, req.Title, req.Comment)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "review added successfully", review)
}

// DeleteReview godoc
// @Summary Delete one of your reviews
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	if err := h.reviewService.DeleteReview(c.Request().Context(), user, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "review deleted successfully", nil)
}

// ListReviews godoc
// @Summary List a product's reviews
// @Tags reviews
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} errors.Envelope
// @Router /products/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reviews, err := h.reviewService.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "reviews fetched successfully", reviews)
}

// CreateReply godoc
// @Summary Reply to a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body CreateReplyRequest true "Reply"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /replies [post]
func (h *ReviewHandler) CreateReply(c echo.Context) error {
	var req CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	reply, err := h.reviewService.CreateReply(c.Request().Context(), user, req.ReviewID, req.Comment)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "reply added successfully", reply)
}

// DeleteReply godoc
// @Summary Delete one of your replies
// @Tags reviews
// @Produce json
// @Param id path int true "Reply ID"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /replies/{id} [delete]
func (h *ReviewHandler) DeleteReply(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user := middleware.CurrentUser(c)
	if err := h.reviewService.DeleteReply(c.Request().Context(), user, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "reply deleted successfully", nil)
}

// ListReplies godoc
// @Summary List a review's replies
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} errors.Envelope
// @Router /reviews/{id}/replies [get]
func (h *ReviewHandler) ListReplies(c echo.Context) error {
	reviewID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	replies, err := h.reviewService.ListReplies(c.Request().Context(), reviewID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "replies fetched successfully", replies)
}
