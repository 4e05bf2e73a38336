package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, post *Post) error
	FindAll(ctx context.Context, db *gorm.DB) ([]Post, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}
