package repository

import (
	"context"
	"errors"

	"github.com/klimatech/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, description = ?, full_description = ?, price = ?, discount = ?, category = ?, specs = ?, image = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Description,
		product.FullDescription,
		product.Price,
		product.Discount,
		product.Category,
		product.Specs,
		product.Images,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *repo) UpdateDiscount(ctx context.Context, db *gorm.DB, id int64, discount float64) (int64, error) {
	res := db.WithContext(ctx).Exec(`UPDATE products SET discount = ? WHERE id = ?`, discount, id)
	return res.RowsAffected, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
