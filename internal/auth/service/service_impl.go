package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/klimatech/storefront/internal/auth/domain"
	"github.com/klimatech/storefront/internal/auth/password"
	"github.com/klimatech/storefront/internal/config"
	"github.com/klimatech/storefront/internal/providers/email"
	pkgdb "github.com/klimatech/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	tokenBytes        = 32
	minPasswordLength = 6
)

type Params struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   authdomain.Repository
	Email  email.Provider
}

type Service struct {
	baseURL string
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    authdomain.Repository
	email   email.Provider
}

func New(p Params) authdomain.Service {
	return &Service{
		baseURL: p.Config.PublicBaseURL,
		db:      p.DB,
		log:     p.Log.Named("auth.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		email:   p.Email,
	}
}

func (s *Service) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.User, error) {
	name := strings.TrimSpace(req.Name)
	emailAddr, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, authdomain.ErrInvalidEmail
	}
	if name == "" {
		return nil, authdomain.ErrMissingFields
	}
	if len(req.Password) < minPasswordLength {
		return nil, authdomain.ErrWeakPassword
	}

	existing, err := s.repo.FindUserByEmail(ctx, s.db, emailAddr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrUserExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authdomain.User{
		ID:                   s.genID.Generate().Int64(),
		Name:                 name,
		Email:                emailAddr,
		PasswordHash:         hash,
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.CreateUser(ctx, s.db, user); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, authdomain.ErrUserExists
		}
		return nil, err
	}

	if err := s.issueToken(ctx, user, authdomain.PurposeVerifyEmail); err != nil {
		s.log.Warn("verification email not sent",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *Service) Login(ctx context.Context, emailAddr, pass string) (*authdomain.User, error) {
	normalized, err := normalizeEmail(emailAddr)
	if err != nil {
		return nil, authdomain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(pass, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, authdomain.ErrNotVerified
	}
	return user, nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindToken(ctx, tx, strings.TrimSpace(token), authdomain.PurposeVerifyEmail)
		if err != nil {
			return err
		}
		if record == nil {
			return authdomain.ErrInvalidToken
		}
		if record.Expired(time.Now().UTC()) {
			return authdomain.ErrTokenExpired
		}

		user, err := s.repo.FindUserByID(ctx, tx, record.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return authdomain.ErrUserNotFound
		}

		user.IsVerified = true
		user.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateUser(ctx, tx, user); err != nil {
			return err
		}
		return s.repo.DeleteToken(ctx, tx, record.ID)
	})
}

func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	normalized, err := normalizeEmail(emailAddr)
	if err != nil {
		return authdomain.ErrInvalidEmail
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrUserNotFound
	}
	if user.IsVerified {
		return authdomain.ErrAlreadyVerified
	}
	return s.issueToken(ctx, user, authdomain.PurposeVerifyEmail)
}

func (s *Service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	normalized, err := normalizeEmail(emailAddr)
	if err != nil {
		return authdomain.ErrInvalidEmail
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrUserNotFound
	}
	return s.issueToken(ctx, user, authdomain.PurposeResetPassword)
}

func (s *Service) VerifyResetToken(ctx context.Context, token string) error {
	record, err := s.repo.FindToken(ctx, s.db, strings.TrimSpace(token), authdomain.PurposeResetPassword)
	if err != nil {
		return err
	}
	if record == nil {
		return authdomain.ErrInvalidToken
	}
	if record.Expired(time.Now().UTC()) {
		return authdomain.ErrTokenExpired
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return authdomain.ErrWeakPassword
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindToken(ctx, tx, strings.TrimSpace(token), authdomain.PurposeResetPassword)
		if err != nil {
			return err
		}
		if record == nil {
			return authdomain.ErrInvalidToken
		}
		if record.Expired(time.Now().UTC()) {
			return authdomain.ErrTokenExpired
		}

		user, err := s.repo.FindUserByID(ctx, tx, record.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return authdomain.ErrUserNotFound
		}

		hash, err := password.Hash(newPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		user.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateUser(ctx, tx, user); err != nil {
			return err
		}
		return s.repo.DeleteToken(ctx, tx, record.ID)
	})
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return authdomain.ErrWeakPassword
	}

	user, err := s.repo.FindUserByID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrUserNotFound
	}
	if !password.Verify(currentPassword, user.PasswordHash) {
		return authdomain.ErrInvalidCredentials
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	return s.repo.UpdateUser(ctx, s.db, user)
}

func (s *Service) UpdateUserInfo(ctx context.Context, req authdomain.UpdateInfoRequest) (*authdomain.User, error) {
	user, err := s.repo.FindUserByID(ctx, s.db, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, authdomain.ErrMissingFields
		}
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.AlternativePhone != nil {
		user.AlternativePhone = strings.TrimSpace(*req.AlternativePhone)
	}
	if req.Address != nil {
		user.Address = strings.TrimSpace(*req.Address)
	}
	if req.DeliveryNotes != nil {
		user.DeliveryNotes = strings.TrimSpace(*req.DeliveryNotes)
	}
	if req.NotificationsEnabled != nil {
		user.NotificationsEnabled = *req.NotificationsEnabled
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateUser(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*authdomain.User, error) {
	user, err := s.repo.FindUserByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return user, nil
}

// issueToken replaces any outstanding token of the same purpose, stores a
// fresh one and emails the corresponding link.
func (s *Service) issueToken(ctx context.Context, user *authdomain.User, purpose string) error {
	token, err := generateToken()
	if err != nil {
		return err
	}

	ttl := authdomain.VerifyTokenTTL
	if purpose == authdomain.PurposeResetPassword {
		ttl = authdomain.ResetTokenTTL
	}

	now := time.Now().UTC()
	record := &authdomain.EmailToken{
		ID:        s.genID.Generate().Int64(),
		UserID:    user.ID,
		Token:     token,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteTokensForUser(ctx, tx, user.ID, purpose); err != nil {
			return err
		}
		return s.repo.CreateToken(ctx, tx, record)
	})
	if err != nil {
		return err
	}

	switch purpose {
	case authdomain.PurposeVerifyEmail:
		return s.email.SendTemplate(ctx, []string{user.Email}, "verify_email", map[string]interface{}{
			"name":       user.Name,
			"verify_url": fmt.Sprintf("%s/verify-account?token=%s", s.baseURL, token),
		})
	case authdomain.PurposeResetPassword:
		return s.email.SendTemplate(ctx, []string{user.Email}, "reset_password", map[string]interface{}{
			"name":      user.Name,
			"reset_url": fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token),
		})
	}
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", authdomain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", authdomain.ErrInvalidEmail
	}
	return trimmed, nil
}
