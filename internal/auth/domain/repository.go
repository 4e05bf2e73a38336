package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, db *gorm.DB, user *User) error
	FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindUserByID(ctx context.Context, db *gorm.DB, id int64) (*User, error)
	UpdateUser(ctx context.Context, db *gorm.DB, user *User) error
	HasAdmin(ctx context.Context, db *gorm.DB) (bool, error)

	CreateToken(ctx context.Context, db *gorm.DB, token *EmailToken) error
	FindToken(ctx context.Context, db *gorm.DB, token, purpose string) (*EmailToken, error)
	DeleteToken(ctx context.Context, db *gorm.DB, id int64) error
	DeleteTokensForUser(ctx context.Context, db *gorm.DB, userID int64, purpose string) error
}
