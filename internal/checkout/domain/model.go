package domain

import (
	"context"
	"errors"
)

var (
	ErrEmptyCart       = errors.New("empty_cart")
	ErrMissingContact  = errors.New("missing_contact_fields")
	ErrInvalidPhone    = errors.New("invalid_phone")
	ErrCommentsTooLong = errors.New("comments_too_long")
	ErrInvalidCartItem = errors.New("invalid_cart_item")
)

// MaxCommentsLen caps the free-text comments field.
const MaxCommentsLen = 200

// CartItem is a client-held line selected for purchase. Price is the
// unit price the customer saw at submission time.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Contact is the customer-supplied contact block of a checkout request.
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Comments string `json:"comments"`
}

type SubmitRequest struct {
	Cart    []CartItem
	Contact Contact
	UserID  *int64
}

// SubmitResult reports what the checkout recorded. OrderID is nil when
// no durable order was written (guest checkout or a failed history write).
type SubmitResult struct {
	NotificationID int64   `json:"notification_id"`
	OrderID        *int64  `json:"order_id,omitempty"`
	TotalPrice     float64 `json:"total_price"`
}

type Service interface {
	SubmitOrder(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}
