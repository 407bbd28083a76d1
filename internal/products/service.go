package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niastore/nia-storefront/pkg/db/models"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"gorm.io/gorm"
)

const notFoundMessage = "Product not found!"

// Service exposes catalogue operations.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id uint) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uint) error
}

type productStore interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type service struct {
	repo productStore
}

// NewService constructs a product service instance.
func NewService(repo productStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, unavailable(err, "list products")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, unavailable(err, "load product")
	}
	dto := FromModel(product)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	var description *string
	if input.Description != nil {
		if trimmed := strings.TrimSpace(*input.Description); trimmed != "" {
			description = &trimmed
		}
	}

	product, err := s.repo.Create(ctx, &models.Product{
		Name:          strings.TrimSpace(input.Name),
		Price:         input.Price.Round(2),
		Image:         strings.TrimSpace(input.Image),
		Category:      strings.TrimSpace(input.Category),
		Description:   description,
		StockQuantity: input.StockQuantity,
	})
	if err != nil {
		return nil, unavailable(err, "create product")
	}
	dto := FromModel(product)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return unavailable(err, "delete product")
	}
	return nil
}

func validateCreate(input CreateProductInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "is required"
	}
	if strings.TrimSpace(input.Image) == "" {
		details["image"] = "is required"
	}
	if input.Price.IsNegative() {
		details["price"] = "must be greater than or equal to 0"
	}
	if input.StockQuantity < 0 {
		details["stock_quantity"] = "must be greater than or equal to 0"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func unavailable(err error, step string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "product store unavailable").
		WithDetails(map[string]any{"step": step})
}
