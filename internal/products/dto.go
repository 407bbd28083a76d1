package products

import (
	"time"

	"github.com/niastore/nia-storefront/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO is the public representation of a product. Price is a fixed
// two-place decimal string.
type ProductDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	Image         string    `json:"image"`
	Category      string    `json:"category"`
	Description   *string   `json:"description,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name          string
	Price         decimal.Decimal
	Image         string
	Category      string
	Description   *string
	StockQuantity int
}

func FromModel(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price.StringFixed(2),
		Image:         p.Image,
		Category:      p.Category,
		Description:   p.Description,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
	}
}

func FromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
