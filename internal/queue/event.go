// Package queue defines order events published to the message broker.
package queue

// Event types carried in OrderEvent.Type.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published when an order is placed or its status changes. It
// carries enough for downstream consumers (notifications, analytics) to act
// without querying the primary database.
type OrderEvent struct {
	Type        string  `json:"type"`
	OrderID     uint    `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	ProductID   uint    `json:"product_id"`
	OrderedBy   uint    `json:"ordered_by"`
	OwnedBy     uint    `json:"owned_by"`
	Status      string  `json:"status"`
	IsPaid      bool    `json:"is_paid"`
	Quantity    int     `json:"quantity"`
	FinalPrice  float64 `json:"final_price"`
	OccurredAt  string  `json:"occurred_at"`
}
