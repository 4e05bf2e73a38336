package repository

import (
	"context"
	"errors"

	orderdomain "github.com/klimatech/storefront/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, tx *gorm.DB, order *orderdomain.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]orderdomain.Order, error) {
	var orders []orderdomain.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID int64) ([]orderdomain.Order, error) {
	var orders []orderdomain.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx *gorm.DB, order *orderdomain.Order) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		order.Status,
		order.UpdatedAt,
		order.ID,
	).Error
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB) (map[orderdomain.Status]int64, error) {
	var rows []struct {
		Status orderdomain.Status
		Total  int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT status, COUNT(*) AS total FROM orders GROUP BY status`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[orderdomain.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *repo) SumCompletedRevenue(ctx context.Context, db *gorm.DB) (float64, error) {
	var revenue float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = ?`,
		orderdomain.StatusCompleted,
	).Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	return revenue, nil
}
