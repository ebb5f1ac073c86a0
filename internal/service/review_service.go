package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/repository"
)

// ReviewService manages product reviews and their reply threads.
type ReviewService interface {
	CreateReview(ctx context.Context, user *model.User, productID uint, title, comment string) (*model.Review, error)
	DeleteReview(ctx context.Context, user *model.User, reviewID uint) error
	ListReviews(ctx context.Context, productID uint) ([]model.Review, error)
	CreateReply(ctx context.Context, user *model.User, reviewID uint, comment string) (*model.Reply, error)
	DeleteReply(ctx context.Context, user *model.User, replyID uint) error
	ListReplies(ctx context.Context, reviewID uint) ([]model.Reply, error)
}

type reviewService struct {
	reviews  repository.ReviewRepository
	replies  repository.ReplyRepository
	products repository.ProductRepository
}

// NewReviewService creates a review service.
func NewReviewService(reviews repository.ReviewRepository, replies repository.ReplyRepository, products repository.ProductRepository) ReviewService {
	return &reviewService{reviews: reviews, replies: replies, products: products}
}

func (s *reviewService) CreateReview(ctx context.Context, user *model.User, productID uint, title, comment string) (*model.Review, error) {
	if title == "" || comment == "" {
		return nil, apperr.Validation("title and comment are both required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	review := &model.Review{Title: title, Comment: comment, ProductID: productID, CreatedBy: user.ID}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, user *model.User, reviewID uint) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("review not found")
		}
		return fmt.Errorf("load review: %w", err)
	}
	if review.CreatedBy != user.ID {
		return apperr.Forbidden("you can't delete this review")
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *reviewService) ListReviews(ctx context.Context, productID uint) ([]model.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *reviewService) CreateReply(ctx context.Context, user *model.User, reviewID uint, comment string) (*model.Reply, error) {
	if comment == "" {
		return nil, apperr.Validation("comment is required")
	}
	if _, err := s.reviews.FindByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, fmt.Errorf("load review: %w", err)
	}

	reply := &model.Reply{Comment: comment, ReviewID: reviewID, CreatedBy: user.ID}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	return reply, nil
}

func (s *reviewService) DeleteReply(ctx context.Context, user *model.User, replyID uint) error {
	reply, err := s.replies.FindByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("reply not found")
		}
		return fmt.Errorf("load reply: %w", err)
	}
	if reply.CreatedBy != user.ID {
		return apperr.Forbidden("you can't delete this reply")
	}
	if err := s.replies.Delete(ctx, replyID); err != nil {
		return fmt.Errorf("delete reply: %w", err)
	}
	return nil
}

func (s *reviewService) ListReplies(ctx context.Context, reviewID uint) ([]model.Reply, error) {
	return s.replies.ListByReview(ctx, reviewID)
}
