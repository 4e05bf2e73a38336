package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Product, error)
	ReplaceImage(ctx context.Context, id int64, index int, imagePath string) (string, error)
	Delete(ctx context.Context, id int64) error
	BulkApplyDiscount(ctx context.Context, items []DiscountItem) error
}

type CreateRequest struct {
	Name            string
	Description     string
	FullDescription string
	Price           float64
	Category        string
	Specs           []string
	Images          []string
}

type UpdateRequest struct {
	Name            string
	Description     string
	FullDescription string
	Price           float64
	Discount        float64
	Category        string
	Specs           []string
}

// DiscountItem is one entry of a batch discount update.
type DiscountItem struct {
	ID       int64
	Discount float64
}

var (
	ErrNotFound        = errors.New("product_not_found")
	ErrMissingFields   = errors.New("missing_required_fields")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrInvalidImages   = errors.New("invalid_images")
	ErrInvalidImageIdx = errors.New("invalid_image_index")
)
