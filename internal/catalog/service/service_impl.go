package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/klimatech/storefront/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	if err := validateFields(req.Name, req.Description, req.FullDescription, req.Category); err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if len(req.Images) == 0 || len(req.Images) > domain.MaxImages {
		return nil, domain.ErrInvalidImages
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:              s.genID.Generate().Int64(),
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		FullDescription: strings.TrimSpace(req.FullDescription),
		Price:           req.Price,
		Category:        strings.TrimSpace(req.Category),
		Specs:           datatypes.NewJSONSlice(req.Specs),
		Images:          datatypes.NewJSONSlice(req.Images),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.Product, error) {
	if err := validateFields(req.Name, req.Description, req.FullDescription, req.Category); err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if !domain.ValidDiscount(req.Discount) {
		return nil, domain.ErrInvalidDiscount
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Description = strings.TrimSpace(req.Description)
	item.FullDescription = strings.TrimSpace(req.FullDescription)
	item.Price = req.Price
	item.Discount = domain.RoundDiscount(req.Discount)
	item.Category = strings.TrimSpace(req.Category)
	item.Specs = datatypes.NewJSONSlice(req.Specs)
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ReplaceImage(ctx context.Context, id int64, index int, imagePath string) (string, error) {
	if index < 0 || index >= domain.MaxImages {
		return "", domain.ErrInvalidImageIdx
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}
	if index >= len(item.Images) {
		return "", domain.ErrInvalidImageIdx
	}

	item.Images[index] = imagePath
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return "", err
	}
	return imagePath, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BulkApplyDiscount updates every listed product discount inside a single
// transaction. The first invalid entry aborts the whole batch.
func (s *Service) BulkApplyDiscount(ctx context.Context, items []domain.DiscountItem) error {
	if len(items) == 0 {
		return domain.ErrMissingFields
	}
	for _, item := range items {
		if item.ID == 0 {
			return domain.ErrMissingFields
		}
		if !domain.ValidDiscount(item.Discount) {
			return domain.ErrInvalidDiscount
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			affected, err := s.repo.UpdateDiscount(ctx, tx, item.ID, domain.RoundDiscount(item.Discount))
			if err != nil {
				return err
			}
			if affected == 0 {
				return domain.ErrNotFound
			}
		}
		return nil
	})
}

func validateFields(name, description, fullDescription, category string) error {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(description) == "" ||
		strings.TrimSpace(fullDescription) == "" ||
		strings.TrimSpace(category) == "" {
		return domain.ErrMissingFields
	}
	return nil
}
