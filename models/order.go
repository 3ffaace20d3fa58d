package models

import "time"

// Order/cart rows live in the storefront database and are only read (and,
// for stale cart rows, purged) through the pgx pool during product-delete
// precondition checks. Order placement itself is out of scope here.

// Order statuses relevant to the delete guard.
const (
	OrderStatusProcessing     = "processing"
	OrderStatusOutForDelivery = "out for delivery"
	OrderStatusDelivered      = "delivered"
)

// DeliveredOrderGraceDays blocks deletion of a product whose delivered
// order is younger than this many days.
const DeliveredOrderGraceDays = 30

// CartRefMaxAgeDays is the age past which cart references to a deleted
// product are purged; younger rows are left dangling for the UI to filter.
const CartRefMaxAgeDays = 30

// OrderRef is one order referencing a product, scanned from the storefront
// database.
type OrderRef struct {
	OrderID     string     `json:"order_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// Blocking reports whether this reference forbids deleting the product:
// active fulfilment always blocks, a delivered order blocks within the
// grace window.
func (r OrderRef) Blocking(now time.Time) bool {
	switch r.Status {
	case OrderStatusProcessing, OrderStatusOutForDelivery:
		return true
	case OrderStatusDelivered:
		deliveredAt := r.CreatedAt
		if r.DeliveredAt != nil {
			deliveredAt = *r.DeliveredAt
		}
		return now.Sub(deliveredAt) < time.Duration(DeliveredOrderGraceDays)*24*time.Hour
	default:
		return false
	}
}
