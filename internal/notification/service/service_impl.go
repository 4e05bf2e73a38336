package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/klimatech/storefront/internal/notification/domain"
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
		log:   p.Log.Named("notification.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Notification, error) {
	list, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range list {
		hydrateItems(&list[i])
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Notification, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	hydrateItems(item)
	return item, nil
}

// hydrateItems backfills the structured items of rows written before the
// items column existed by parsing the legacy description block. Rows whose
// description yields no items are served as-is.
func hydrateItems(n *domain.Notification) {
	if len(n.Items) > 0 {
		return
	}
	items, ok := domain.ItemsOf(n)
	if !ok {
		return
	}
	n.Items = datatypes.NewJSONSlice(items)
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Notification, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrMissingName
	}

	kind := strings.TrimSpace(req.Type)
	switch kind {
	case "":
		kind = domain.TypeConsultation
	case domain.TypeConsultation, domain.TypePurchase:
	default:
		return nil, domain.ErrInvalidType
	}

	n := &domain.Notification{
		ID:          s.genID.Generate().Int64(),
		Type:        kind,
		Name:        strings.TrimSpace(req.Name),
		Phone:       orNoData(req.Phone),
		Email:       orNoData(req.Email),
		Address:     orNoData(req.Address),
		Description: orNoData(req.Description),
		Total:       orNoData(req.Total),
		Comments:    orNoData(req.Comments),
		CreatedAt:   time.Now().UTC(),
	}
	if len(req.Items) > 0 {
		n.Items = datatypes.NewJSONSlice(req.Items)
	}

	if err := s.repo.Create(ctx, s.db, n); err != nil {
		return nil, err
	}
	s.log.Info("notification created",
		zap.Int64("id", n.ID),
		zap.String("type", n.Type),
	)
	return n, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.IsRead {
		return nil
	}
	return s.repo.SetRead(ctx, s.db, id)
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

// orNoData keeps optional fields renderable: empty input is stored as the
// explicit no-data marker, never as an empty string or NULL.
func orNoData(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.NoData
	}
	return value
}
