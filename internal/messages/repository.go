package messages

import (
	"context"

	"github.com/niastore/nia-storefront/internal/repo"
	"github.com/niastore/nia-storefront/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists contact submissions. Rows are never updated.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if err := r.DB(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns the newest submissions first. A non-positive limit returns every row.
func (r *Repository) List(ctx context.Context, limit int) ([]models.Message, error) {
	query := r.DB(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.Message
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
