package orders

import (
	"context"

	"github.com/niastore/nia-storefront/internal/repo"
	"github.com/niastore/nia-storefront/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists orders. Orders are append-only.
type Repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	order := input.ToModel()
	if err := r.DB(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// List returns the newest orders first. A non-positive limit returns every row.
func (r *Repository) List(ctx context.Context, limit int) ([]models.Order, error) {
	query := r.DB(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
