package model

import "time"

// Color is a product variant: its own price and image set.
type Color struct {
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
	DP     string   `json:"dp"`
}

// Product is a catalog item owned by a vendor.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"size:255;not null;index:idx_products_search,class:FULLTEXT"`
	Description   string    `json:"description" gorm:"type:text;not null;index:idx_products_search,class:FULLTEXT"`
	Price         float64   `json:"price" gorm:"not null"`
	Discount      float64   `json:"discount"` // percentage
	Colors        []Color   `json:"colors" gorm:"serializer:json"`
	DP            Image     `json:"dp" gorm:"embedded;embeddedPrefix:dp_"`
	Images        []Image   `json:"images" gorm:"serializer:json"`
	CategoryID    uint      `json:"category_id" gorm:"index;not null"`
	SubCategoryID uint      `json:"sub_category_id" gorm:"index;not null"`
	OwnerID       uint      `json:"owner_id" gorm:"index;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
