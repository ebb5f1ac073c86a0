package repository

import (
	"context"

	"gorm.io/gorm"

	"raone/internal/model"
)

// ReplyRepository defines persistence operations on review replies.
type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	FindByID(ctx context.Context, id uint) (*model.Reply, error)
	Delete(ctx context.Context, id uint) error
	ListByReview(ctx context.Context, reviewID uint) ([]model.Reply, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository builds a GORM-backed repository.
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *model.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) FindByID(ctx context.Context, id uint) (*model.Reply, error) {
	var reply model.Reply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Reply{}, id).Error
}

func (r *replyRepository) ListByReview(ctx context.Context, reviewID uint) ([]model.Reply, error) {
	var replies []model.Reply
	if err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}
