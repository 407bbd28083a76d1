package products

import (
	"context"
	"fmt"

	"github.com/niastore/nia-storefront/pkg/db/models"
	"github.com/shopspring/decimal"
)

type sampleProduct struct {
	name        string
	price       string
	image       string
	category    string
	description string
	stock       int
}

var sampleCatalogue = []sampleProduct{
	{"Nike Air Max", "299.99", "images/sneaker1.jpg", "sneakers", "Comfortable running shoes", 10},
	{"Cotton T-Shirt", "49.99", "images/shirt1.jpg", "shirts", "Premium cotton t-shirt", 25},
	{"Denim Jeans", "199.99", "images/jeans1.jpg", "trousers", "Classic blue denim", 15},
	{"Summer Shorts", "89.99", "images/shorts1.jpg", "shorts", "Lightweight summer shorts", 20},
	{"Jordan Sneakers", "399.99", "images/sneaker2.jpg", "sneakers", "Limited edition", 5},
	{"Polo Shirt", "79.99", "images/shirt2.jpg", "shirts", "Classic polo", 18},
}

type seedStore interface {
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, rows []models.Product) error
}

// SeedSamples inserts the sample catalogue when the products table is empty.
// It returns the number of rows inserted.
func SeedSamples(ctx context.Context, store seedStore) (int, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	rows := make([]models.Product, 0, len(sampleCatalogue))
	for _, sample := range sampleCatalogue {
		description := sample.description
		rows = append(rows, models.Product{
			Name:          sample.name,
			Price:         decimal.RequireFromString(sample.price),
			Image:         sample.image,
			Category:      sample.category,
			Description:   &description,
			StockQuantity: sample.stock,
		})
	}
	if err := store.CreateBatch(ctx, rows); err != nil {
		return 0, fmt.Errorf("insert sample products: %w", err)
	}
	return len(rows), nil
}
