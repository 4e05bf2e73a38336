package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/klimatech/storefront/internal/auth/domain"
	"github.com/klimatech/storefront/internal/auth/repository"
	"github.com/klimatech/storefront/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// emailCapture records templated sends so tests can pull tokens out of the
// generated links instead of reading the database.
type emailCapture struct {
	templates []string
	data      []map[string]interface{}
}

func (c *emailCapture) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (c *emailCapture) SendTemplate(ctx context.Context, to []string, templateName string, data interface{}) error {
	c.templates = append(c.templates, templateName)
	if m, ok := data.(map[string]interface{}); ok {
		c.data = append(c.data, m)
	} else {
		c.data = append(c.data, nil)
	}
	return nil
}

func (c *emailCapture) lastToken(t *testing.T, key string) string {
	t.Helper()
	if len(c.data) == 0 {
		t.Fatal("expected an email to have been sent")
	}
	raw, ok := c.data[len(c.data)-1][key].(string)
	if !ok {
		t.Fatalf("expected %s in template data", key)
	}
	idx := strings.Index(raw, "token=")
	if idx < 0 {
		t.Fatalf("expected token in %q", raw)
	}
	return raw[idx+len("token="):]
}

func newTestService(t *testing.T) (authdomain.Service, *emailCapture, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.EmailToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	capture := &emailCapture{}
	svc := &Service{
		baseURL: "https://example.com",
		db:      dbConn,
		log:     zap.NewNop(),
		genID:   node,
		repo:    repository.Provide(),
		email:   capture,
	}
	return svc, capture, dbConn
}

func register(t *testing.T, svc authdomain.Service, email string) *authdomain.User {
	t.Helper()

	user, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Name:     "Ivan Petrov",
		Email:    email,
		Password: "secret-1",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	return user
}

func TestRegisterNormalizesEmailAndSendsVerification(t *testing.T) {
	svc, capture, _ := newTestService(t)

	user := register(t, svc, "  Ivan@Example.COM ")
	if user.Email != "ivan@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.IsVerified {
		t.Fatal("expected new account to be unverified")
	}
	if len(capture.templates) != 1 || capture.templates[0] != "verify_email" {
		t.Fatalf("expected one verify_email send, got %v", capture.templates)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	register(t, svc, "ivan@example.com")
	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Name:     "Another Ivan",
		Email:    "IVAN@example.com",
		Password: "secret-2",
	})
	if err != authdomain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Name:     "Ivan",
		Email:    "ivan@example.com",
		Password: "12345",
	})
	if err != authdomain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginBeforeAndAfterVerification(t *testing.T) {
	svc, capture, _ := newTestService(t)
	register(t, svc, "ivan@example.com")

	if _, err := svc.Login(context.Background(), "ivan@example.com", "secret-1"); err != authdomain.ErrNotVerified {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}

	// Wrong password wins over the unverified state.
	if _, err := svc.Login(context.Background(), "ivan@example.com", "wrong"); err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	token := capture.lastToken(t, "verify_url")
	if err := svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("failed to verify email: %v", err)
	}

	user, err := svc.Login(context.Background(), "ivan@example.com", "secret-1")
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if !user.IsVerified {
		t.Fatal("expected verified user")
	}
}

func TestVerifyEmailTokenIsSingleUse(t *testing.T) {
	svc, capture, _ := newTestService(t)
	register(t, svc, "ivan@example.com")

	token := capture.lastToken(t, "verify_url")
	if err := svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("failed to verify email: %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), token); err != authdomain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	svc, capture, dbConn := newTestService(t)
	register(t, svc, "ivan@example.com")

	token := capture.lastToken(t, "verify_url")
	expired := time.Now().UTC().Add(-time.Minute)
	if err := dbConn.Exec("UPDATE email_verification_tokens SET expires_at = ?", expired).Error; err != nil {
		t.Fatalf("failed to expire token: %v", err)
	}

	if err := svc.VerifyEmail(context.Background(), token); err != authdomain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestResendVerificationReplacesToken(t *testing.T) {
	svc, capture, _ := newTestService(t)
	register(t, svc, "ivan@example.com")

	first := capture.lastToken(t, "verify_url")
	if err := svc.ResendVerification(context.Background(), "ivan@example.com"); err != nil {
		t.Fatalf("failed to resend: %v", err)
	}
	second := capture.lastToken(t, "verify_url")
	if first == second {
		t.Fatal("expected a fresh token on resend")
	}

	if err := svc.VerifyEmail(context.Background(), first); err != authdomain.ErrInvalidToken {
		t.Fatalf("expected replaced token to be invalid, got %v", err)
	}
	if err := svc.VerifyEmail(context.Background(), second); err != nil {
		t.Fatalf("failed to verify with the fresh token: %v", err)
	}
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	svc, capture, _ := newTestService(t)
	register(t, svc, "ivan@example.com")

	if err := svc.VerifyEmail(context.Background(), capture.lastToken(t, "verify_url")); err != nil {
		t.Fatalf("failed to verify email: %v", err)
	}
	if err := svc.ResendVerification(context.Background(), "ivan@example.com"); err != authdomain.ErrAlreadyVerified {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, capture, _ := newTestService(t)
	register(t, svc, "ivan@example.com")
	if err := svc.VerifyEmail(context.Background(), capture.lastToken(t, "verify_url")); err != nil {
		t.Fatalf("failed to verify email: %v", err)
	}

	if err := svc.RequestPasswordReset(context.Background(), "ivan@example.com"); err != nil {
		t.Fatalf("failed to request reset: %v", err)
	}
	token := capture.lastToken(t, "reset_url")

	if err := svc.VerifyResetToken(context.Background(), token); err != nil {
		t.Fatalf("expected reset token to be valid: %v", err)
	}
	if err := svc.ResetPassword(context.Background(), token, "new-secret"); err != nil {
		t.Fatalf("failed to reset password: %v", err)
	}

	if _, err := svc.Login(context.Background(), "ivan@example.com", "secret-1"); err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ivan@example.com", "new-secret"); err != nil {
		t.Fatalf("failed to login with the new password: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "another-secret"); err != authdomain.ErrInvalidToken {
		t.Fatalf("expected consumed token to be invalid, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, capture, _ := newTestService(t)
	user := register(t, svc, "ivan@example.com")
	if err := svc.VerifyEmail(context.Background(), capture.lastToken(t, "verify_url")); err != nil {
		t.Fatalf("failed to verify email: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-secret"); err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "secret-1", "new-secret"); err != nil {
		t.Fatalf("failed to change password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ivan@example.com", "new-secret"); err != nil {
		t.Fatalf("failed to login with the new password: %v", err)
	}
}

func TestUpdateUserInfoPartial(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := register(t, svc, "ivan@example.com")

	phone := "+7 (900) 123-45-67"
	disabled := false
	updated, err := svc.UpdateUserInfo(context.Background(), authdomain.UpdateInfoRequest{
		UserID:               user.ID,
		Phone:                &phone,
		NotificationsEnabled: &disabled,
	})
	if err != nil {
		t.Fatalf("failed to update user info: %v", err)
	}
	if updated.Phone != phone {
		t.Fatalf("expected phone %q, got %q", phone, updated.Phone)
	}
	if updated.NotificationsEnabled {
		t.Fatal("expected notifications disabled")
	}
	if updated.Name != "Ivan Petrov" {
		t.Fatalf("expected untouched name, got %q", updated.Name)
	}
}
