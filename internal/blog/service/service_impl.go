package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	blogdomain "github.com/klimatech/storefront/internal/blog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  blogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  blogdomain.Repository
}

func New(p Params) blogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("blog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]blogdomain.Post, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) Create(ctx context.Context, req blogdomain.CreateRequest) (*blogdomain.Post, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, blogdomain.ErrMissingFields
	}

	post := &blogdomain.Post{
		ID:        s.genID.Generate().Int64(),
		Title:     title,
		Slug:      slug.Make(title),
		Content:   content,
		Author:    blogdomain.DefaultAuthor,
		Image:     strings.TrimSpace(req.Image),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, s.db, post); err != nil {
		return nil, err
	}

	s.log.Info("blog post created", zap.Int64("post_id", post.ID), zap.String("slug", post.Slug))
	return post, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return blogdomain.ErrPostNotFound
	}
	return nil
}
