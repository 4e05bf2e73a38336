package repository

import (
	"context"
	"errors"

	authdomain "github.com/klimatech/storefront/internal/auth/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() authdomain.Repository {
	return &repo{}
}

func (r *repo) CreateUser(ctx context.Context, db *gorm.DB, user *authdomain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindUserByID(ctx context.Context, db *gorm.DB, id int64) (*authdomain.User, error) {
	var user authdomain.User
	err := db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) UpdateUser(ctx context.Context, db *gorm.DB, user *authdomain.User) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET
			name = ?, email = ?, password_hash = ?, phone = ?, alternative_phone = ?,
			address = ?, delivery_notes = ?, notifications_enabled = ?, is_verified = ?,
			is_admin = ?, updated_at = ?
		 WHERE id = ?`,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.AlternativePhone,
		user.Address,
		user.DeliveryNotes,
		user.NotificationsEnabled,
		user.IsVerified,
		user.IsAdmin,
		user.UpdatedAt,
		user.ID,
	).Error
}

func (r *repo) HasAdmin(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&authdomain.User{}).Where("is_admin = ?", true).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CreateToken(ctx context.Context, db *gorm.DB, token *authdomain.EmailToken) error {
	return db.WithContext(ctx).Create(token).Error
}

func (r *repo) FindToken(ctx context.Context, db *gorm.DB, token, purpose string) (*authdomain.EmailToken, error) {
	var record authdomain.EmailToken
	err := db.WithContext(ctx).First(&record, "token = ? AND purpose = ?", token, purpose).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) DeleteToken(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM email_verification_tokens WHERE id = ?`, id).Error
}

func (r *repo) DeleteTokensForUser(ctx context.Context, db *gorm.DB, userID int64, purpose string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM email_verification_tokens WHERE user_id = ? AND purpose = ?`,
		userID, purpose,
	).Error
}
