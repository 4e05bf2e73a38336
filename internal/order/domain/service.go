package domain

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound      = errors.New("order_not_found")
	ErrInvalidOrder       = errors.New("invalid_order")
	ErrInvalidTargetState = errors.New("invalid_target_status")
	ErrInvalidTransition  = errors.New("invalid_transition")
)

// CreateRequest carries a new order with its item snapshots.
type CreateRequest struct {
	UserID          *int64
	CustomerName    string
	ContactPhone    string
	ContactEmail    string
	ShippingAddress string
	Comments        string
	TotalPrice      float64
	Items           []OrderItem
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	TransitionStatus(ctx context.Context, id int64, target Status) (*Order, error)
	Stats(ctx context.Context) (*Stats, error)
}
