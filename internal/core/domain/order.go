package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the processing state of an order. There is no
// transition graph: employees may move an order from any status to any
// other, so only membership is validated.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidOrderStatus = errors.New("invalid order status")

var orderStatuses = map[OrderStatus]struct{}{
	OrderPending:   {},
	OrderPreparing: {},
	OrderShipped:   {},
	OrderCompleted: {},
	OrderCancelled: {},
}

// ValidOrderStatus reports whether s is one of the five known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderStatuses[s]
	return ok
}

// OrderItem is a single line item on an order.
type OrderItem struct {
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
}

// Order is a customer order processed by employees.
type Order struct {
	ID            string      `json:"id" bson:"_id,omitempty"`
	Code          string      `json:"code" bson:"code"`
	CustomerEmail string      `json:"customer_email" bson:"customer_email"`
	Items         []OrderItem `json:"items" bson:"items"`
	Total         float64     `json:"total" bson:"total"`
	Status        OrderStatus `json:"status" bson:"status"`
	OrderDate     time.Time   `json:"order_date" bson:"order_date"`
}
