package model

import "time"

// Reply is a threaded answer to a review.
type Reply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	ReviewID  uint      `json:"review_id" gorm:"not null;index"`
	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
