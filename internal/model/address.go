package model

import "time"

// Address is a delivery address owned by a user.
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Phone     string    `json:"phone" gorm:"size:32;not null"`
	Pin       string    `json:"pin" gorm:"size:16;not null"`
	Country   string    `json:"country" gorm:"size:128;not null"`
	State     string    `json:"state" gorm:"size:128;not null"`
	City      string    `json:"city" gorm:"size:128;not null"`
	Line1     string    `json:"line1" gorm:"size:255;not null"`
	Line2     string    `json:"line2" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
