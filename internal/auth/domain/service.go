package domain

import "context"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateInfoRequest struct {
	UserID               int64   `json:"userId"`
	Name                 *string `json:"name"`
	Phone                *string `json:"phone"`
	AlternativePhone     *string `json:"alternativePhone"`
	Address              *string `json:"address"`
	DeliveryNotes        *string `json:"deliveryNotes"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	UpdateUserInfo(ctx context.Context, req UpdateInfoRequest) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
}
