package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
)

const (
	TypeConsultation = "consultation"
	TypePurchase     = "purchase"

	// NoData marks an optional field the sender left empty. Stored instead
	// of NULL so text rendering downstream never deals with missing values.
	NoData = "—"
)

// Notification is one inbox entry: either a consultation request or a
// purchase order summary.
type Notification struct {
	ID          int64                         `json:"id" gorm:"primaryKey"`
	Type        string                        `json:"type" gorm:"type:text;not null;default:consultation"`
	Name        string                        `json:"name" gorm:"type:text;not null"`
	Phone       string                        `json:"phone" gorm:"type:text;not null"`
	Email       string                        `json:"email" gorm:"type:text;not null"`
	Address     string                        `json:"address" gorm:"type:text;not null"`
	Description string                        `json:"description" gorm:"type:text;not null"`
	Items       datatypes.JSONSlice[LineItem] `json:"items" gorm:"type:json"`
	Total       string                        `json:"total" gorm:"type:text;not null"`
	Comments    string                        `json:"comments" gorm:"type:text;not null"`
	IsRead      bool                          `json:"isRead" gorm:"column:is_read;not null;default:false"`
	CreatedAt   time.Time                     `json:"createdAt" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Notification) TableName() string { return "notifications" }

// LineItem is one ordered product inside a purchase notification.
type LineItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Service interface {
	List(ctx context.Context) ([]Notification, error)
	Get(ctx context.Context, id int64) (*Notification, error)
	Create(ctx context.Context, req CreateRequest) (*Notification, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Type        string
	Name        string
	Phone       string
	Email       string
	Address     string
	Description string
	Items       []LineItem
	Total       string
	Comments    string
}

var (
	ErrNotFound    = errors.New("notification_not_found")
	ErrMissingName = errors.New("missing_name")
	ErrInvalidType = errors.New("invalid_notification_type")
)
