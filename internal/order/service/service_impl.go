package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/klimatech/storefront/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  orderdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  orderdomain.Repository
}

func New(p Params) orderdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" || len(req.Items) == 0 {
		return nil, orderdomain.ErrInvalidOrder
	}

	now := time.Now().UTC()
	order := &orderdomain.Order{
		ID:              s.genID.Generate().Int64(),
		UserID:          req.UserID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		ContactPhone:    strings.TrimSpace(req.ContactPhone),
		ContactEmail:    strings.TrimSpace(req.ContactEmail),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Comments:        strings.TrimSpace(req.Comments),
		TotalPrice:      req.TotalPrice,
		Status:          orderdomain.StatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, orderdomain.OrderItem{
			ID:        s.genID.Generate().Int64(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Float64("total_price", order.TotalPrice),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*orderdomain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) ListAll(ctx context.Context) ([]orderdomain.Order, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]orderdomain.Order, error) {
	return s.repo.FindByUser(ctx, s.db, userID)
}

func (s *Service) TransitionStatus(ctx context.Context, id int64, target orderdomain.Status) (*orderdomain.Order, error) {
	if !orderdomain.ValidStatus(target) {
		return nil, orderdomain.ErrInvalidTargetState
	}

	var order *orderdomain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return orderdomain.ErrOrderNotFound
		}
		order = found

		if order.Status == target {
			return nil
		}
		if !orderdomain.CanTransition(order.Status, target) {
			return orderdomain.ErrInvalidTransition
		}

		order.Status = target
		order.UpdatedAt = time.Now().UTC()
		return s.repo.UpdateStatus(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order status changed",
		zap.Int64("order_id", order.ID),
		zap.String("status", string(order.Status)),
	)
	return order, nil
}

func (s *Service) Stats(ctx context.Context) (*orderdomain.Stats, error) {
	counts, err := s.repo.CountByStatus(ctx, s.db)
	if err != nil {
		return nil, err
	}

	stats := &orderdomain.Stats{}
	for status, count := range counts {
		stats.Total += count
		switch status {
		case orderdomain.StatusCompleted:
			stats.Completed = count
		case orderdomain.StatusCancelled:
			stats.Cancelled = count
		default:
			stats.InProgress += count
		}
	}
	if stats.Total > 0 {
		stats.CompletedShare = roundShare(float64(stats.Completed) / float64(stats.Total) * 100)
		stats.CancelledShare = roundShare(float64(stats.Cancelled) / float64(stats.Total) * 100)
	}

	revenue, err := s.repo.SumCompletedRevenue(ctx, s.db)
	if err != nil {
		return nil, err
	}
	stats.Revenue = revenue
	return stats, nil
}

func roundShare(v float64) float64 {
	return math.Round(v*100) / 100
}
