package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, n *Notification) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Notification, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Notification, error)
	SetRead(ctx context.Context, db *gorm.DB, id int64) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}
