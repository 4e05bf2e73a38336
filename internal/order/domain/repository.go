package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, tx *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Order, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, order *Order) error
	CountByStatus(ctx context.Context, db *gorm.DB) (map[Status]int64, error)
	SumCompletedRevenue(ctx context.Context, db *gorm.DB) (float64, error)
}
