// Package domain contains core types for the auth service.
package domain

import (
	"time"
)

// User represents a customer or administrator account.
type User struct {
	ID                   int64     `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"column:name" json:"name"`
	Email                string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash         string    `gorm:"column:password_hash" json:"-"`
	Phone                string    `gorm:"column:phone" json:"phone"`
	AlternativePhone     string    `gorm:"column:alternative_phone" json:"alternative_phone"`
	Address              string    `gorm:"column:address" json:"address"`
	DeliveryNotes        string    `gorm:"column:delivery_notes" json:"delivery_notes"`
	NotificationsEnabled bool      `gorm:"column:notifications_enabled;default:true" json:"notifications_enabled"`
	IsVerified           bool      `gorm:"column:is_verified" json:"is_verified"`
	IsAdmin              bool      `gorm:"column:is_admin" json:"is_admin"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Token purposes. Verification tokens live 24h, reset tokens 1h; both
// are single-use and deleted on consume.
const (
	PurposeVerifyEmail   = "verify_email"
	PurposeResetPassword = "reset_password"

	VerifyTokenTTL = 24 * time.Hour
	ResetTokenTTL  = time.Hour
)

// EmailToken is a single-use verification or password-reset token.
type EmailToken struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Token     string    `gorm:"column:token;uniqueIndex"`
	Purpose   string    `gorm:"column:purpose"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time
}

func (EmailToken) TableName() string { return "email_verification_tokens" }

// Expired reports whether the token is past its expiry at the given time.
func (t EmailToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
