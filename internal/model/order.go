package model

import "time"

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderPacked         OrderStatus = "PACKED"
	OrderOutForDelivery OrderStatus = "OUT FOR DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
	OrderReturned       OrderStatus = "RETURNED"
)

// ValidOrderStatus reports whether s is one of the known states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPacked, OrderOutForDelivery, OrderDelivered, OrderCancelled, OrderReturned:
		return true
	}
	return false
}

// PaymentMode is how the customer pays for an order.
type PaymentMode string

const (
	PaymentUPI  PaymentMode = "UPI"
	PaymentCard PaymentMode = "CARD"
	PaymentCOD  PaymentMode = "COD"
)

// ValidPaymentMode reports whether m is one of the known modes.
func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentCOD:
		return true
	}
	return false
}

// Order records a purchase of one product. Price and discount are
// snapshotted from the product at order time.
type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Number      string      `json:"number" gorm:"size:64;uniqueIndex;not null"`
	ProductID   uint        `json:"product_id" gorm:"not null;index"`
	OrderedBy   uint        `json:"ordered_by" gorm:"not null;index"`
	OwnedBy     uint        `json:"owned_by" gorm:"not null;index"` // the product's vendor
	AddressID   uint        `json:"address_id" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"size:32;not null;default:'PENDING'"`
	PaymentMode PaymentMode `json:"payment_mode" gorm:"size:16;not null"`
	IsPaid      bool        `json:"is_paid" gorm:"not null;default:false"`
	Quantity    int         `json:"quantity" gorm:"not null"`
	FinalPrice  float64     `json:"final_price" gorm:"not null"`
	Discount    float64     `json:"discount"` // percentage
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
