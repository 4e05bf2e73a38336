package domain

import (
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
)

// Order is a confirmed purchase with a snapshot of the purchased items.
type Order struct {
	ID              int64       `gorm:"primaryKey" json:"id"`
	UserID          *int64      `gorm:"column:user_id;index" json:"user_id,omitempty"`
	CustomerName    string      `gorm:"column:customer_name" json:"customer_name"`
	ContactPhone    string      `gorm:"column:contact_phone" json:"contact_phone"`
	ContactEmail    string      `gorm:"column:contact_email" json:"contact_email"`
	ShippingAddress string      `gorm:"column:shipping_address" json:"shipping_address"`
	Comments        string      `gorm:"column:comments" json:"comments"`
	TotalPrice      float64     `gorm:"column:total_price" json:"total_price"`
	Status          Status      `gorm:"column:status;default:processing" json:"status"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a per-line snapshot. Price and name are captured at
// checkout time so later catalog edits do not rewrite history.
type OrderItem struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	OrderID   int64   `gorm:"column:order_id;index" json:"order_id"`
	ProductID int64   `gorm:"column:product_id" json:"product_id"`
	Name      string  `gorm:"column:name" json:"name"`
	Price     float64 `gorm:"column:price" json:"price"`
	Quantity  int     `gorm:"column:quantity" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Stats summarizes order outcomes for the admin dashboard.
type Stats struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	Cancelled      int64   `json:"cancelled"`
	InProgress     int64   `json:"in_progress"`
	CompletedShare float64 `json:"completed_share"`
	CancelledShare float64 `json:"cancelled_share"`
	Revenue        float64 `json:"revenue"`
}

// ValidStatus reports whether status is one of the known lifecycle states.
func ValidStatus(status Status) bool {
	switch status {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the lifecycle graph permits moving
// from current to target. Cancelled and completed are terminal.
func CanTransition(current, target Status) bool {
	switch current {
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled || target == StatusCompleted
	case StatusShipped:
		return target == StatusDelivered || target == StatusCancelled || target == StatusCompleted
	case StatusDelivered:
		return target == StatusCompleted || target == StatusCancelled
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions leave the status.
func IsTerminal(status Status) bool {
	return status == StatusCancelled || status == StatusCompleted
}
