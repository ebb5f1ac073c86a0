package model

import "time"

// Review is a customer's feedback on a product.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	CreatedBy uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
