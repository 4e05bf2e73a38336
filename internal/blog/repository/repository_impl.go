package repository

import (
	"context"

	blogdomain "github.com/klimatech/storefront/internal/blog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() blogdomain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, post *blogdomain.Post) error {
	return db.WithContext(ctx).Create(post).Error
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]blogdomain.Post, error) {
	var posts []blogdomain.Post
	err := db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	return result.RowsAffected, result.Error
}
