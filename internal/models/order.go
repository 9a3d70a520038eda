package models

import "time"

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusProcessing       OrderStatus = "processing"
	StatusInTransit        OrderStatus = "in-transit"
	StatusPartiallyShipped OrderStatus = "partially-shipped"
	StatusOutForDelivery   OrderStatus = "out-for-delivery"
	StatusShipped          OrderStatus = "shipped"
	StatusDelivered        OrderStatus = "delivered"
	StatusCancelled        OrderStatus = "cancelled"
)

// statusRank orders the forward progression of the lifecycle. Cancelled sits
// outside the progression and is handled by the cancellation allow-list.
var statusRank = map[OrderStatus]int{
	StatusPending:          0,
	StatusProcessing:       1,
	StatusInTransit:        2,
	StatusPartiallyShipped: 3,
	StatusOutForDelivery:   4,
	StatusShipped:          5,
	StatusDelivered:        6,
}

// cancellableStatuses lists the states an order may still be cancelled from.
// Once fulfilment starts (in-transit and beyond) cancellation is refused.
var cancellableStatuses = map[OrderStatus]bool{
	StatusPending:    true,
	StatusProcessing: true,
}

// ValidStatus reports whether s names a known lifecycle state.
func ValidStatus(s OrderStatus) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanAdvance reports whether an administrator may move an order from one
// status to another. Any strictly forward move is allowed; intermediate
// states may be skipped. Delivered and cancelled are terminal.
func CanAdvance(from, to OrderStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// CanCancel reports whether an order in the given status may be cancelled.
func CanCancel(from OrderStatus) bool {
	return cancellableStatuses[from]
}

// OrderItem is a single line of an order, capturing the quantity and the
// product price observed when the order was placed.
type OrderItem struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	OrderID   string   `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"` // Price at the time of order
}

// OrderBilling is the billing snapshot captured on the order at placement
// time, decoupled from the user's saved billing record.
type OrderBilling struct {
	Recipient Recipient `json:"recipient" gorm:"embedded;embeddedPrefix:recipient_"`
	Address   Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
}

// Order represents a customer order. Orders are never deleted; cancellation
// is a status transition, and TotalPrice is immutable after placement.
type Order struct {
	ID         string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string       `json:"user_id" gorm:"index;type:varchar(36)"`
	Items      []OrderItem  `json:"items" gorm:"foreignKey:OrderID"`
	Billing    OrderBilling `json:"billing" gorm:"embedded;embeddedPrefix:billing_"`
	Status     OrderStatus  `json:"status" gorm:"type:varchar(20)"`
	TotalPrice float64      `json:"total_price"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
