package domain

import (
	"context"
	"errors"
	"time"
)

// DefaultAuthor is stamped on posts created through the admin panel.
const DefaultAuthor = "Admin"

type Post struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"column:title" json:"title"`
	Slug      string    `gorm:"column:slug;index" json:"slug"`
	Content   string    `gorm:"column:content" json:"content"`
	Author    string    `gorm:"column:author" json:"author"`
	Image     string    `gorm:"column:image" json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

func (Post) TableName() string { return "blog_posts" }

var (
	ErrPostNotFound  = errors.New("post_not_found")
	ErrMissingFields = errors.New("missing_required_fields")
)

type CreateRequest struct {
	Title   string
	Content string
	Image   string
}

type Service interface {
	List(ctx context.Context) ([]Post, error)
	Create(ctx context.Context, req CreateRequest) (*Post, error)
	Delete(ctx context.Context, id int64) error
}
