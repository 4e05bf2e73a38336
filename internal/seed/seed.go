package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/klimatech/storefront/internal/auth/domain"
	"github.com/klimatech/storefront/internal/auth/password"
	"github.com/klimatech/storefront/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultAdminName = "Administrator"

// EnsureDefaultAdmin seeds an admin account for startup bootstrap when
// the users table has none.
func EnsureDefaultAdmin(db *gorm.DB, cfg config.Config, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authdomain.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		adminPassword := cfg.Bootstrap.AdminPassword
		if adminPassword == "" {
			adminPassword = "admin"
		}
		hash, err := password.Hash(adminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		admin := &authdomain.User{
			ID:                   node.Generate().Int64(),
			Name:                 defaultAdminName,
			Email:                cfg.Bootstrap.AdminEmail,
			PasswordHash:         hash,
			NotificationsEnabled: true,
			IsVerified:           true,
			IsAdmin:              true,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		if log != nil {
			log.Info("default admin created", zap.String("email", admin.Email))
		}
		return nil
	})
}
