package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	UpdateDiscount(ctx context.Context, db *gorm.DB, id int64, discount float64) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}
