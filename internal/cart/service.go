package cart

import (
	"context"
	"fmt"

	"github.com/niastore/nia-storefront/internal/products"
	"github.com/niastore/nia-storefront/pkg/enums"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service exposes the visitor cart operations.
type Service interface {
	Get(ctx context.Context, visitorID string) (*View, error)
	Add(ctx context.Context, visitorID string, productID uint) (*View, LineView, error)
	Remove(ctx context.Context, visitorID string, productID uint) (*View, error)
	Clear(ctx context.Context, visitorID string) (*View, error)
	Drop(ctx context.Context, visitorID string) error
}

type productLoader interface {
	Get(ctx context.Context, id uint) (*products.ProductDTO, error)
}

type operationCounter interface {
	IncCartOperation(op string)
}

type service struct {
	store    Store
	products productLoader
	metrics  operationCounter
}

// ServiceParams groups the cart service dependencies. Metrics is optional.
type ServiceParams struct {
	Store    Store
	Products productLoader
	Metrics  operationCounter
}

// NewService builds a cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
		metrics:  params.Metrics,
	}, nil
}

func (s *service) Get(ctx context.Context, visitorID string) (*View, error) {
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return NewView(c), nil
}

func (s *service) Add(ctx context.Context, visitorID string, productID uint) (*View, LineView, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, LineView{}, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found!").WithRedirect("/products")
		}
		return nil, LineView{}, err
	}
	price, err := decimal.NewFromString(product.Price)
	if err != nil {
		return nil, LineView{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid product price")
	}

	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, LineView{}, err
	}
	line := c.Add(Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     price,
		Image:     product.Image,
	})
	if err := s.save(ctx, visitorID, c); err != nil {
		return nil, LineView{}, err
	}
	s.count(enums.CartOperationAdd)
	return NewView(c), newLineView(line), nil
}

func (s *service) Remove(ctx context.Context, visitorID string, productID uint) (*View, error) {
	c, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if c.Remove(productID) {
		if err := s.save(ctx, visitorID, c); err != nil {
			return nil, err
		}
		s.count(enums.CartOperationRemove)
	}
	return NewView(c), nil
}

func (s *service) Clear(ctx context.Context, visitorID string) (*View, error) {
	if err := s.store.Delete(ctx, visitorID); err != nil {
		return nil, unavailable(err, "clear cart")
	}
	s.count(enums.CartOperationClear)
	return NewView(New()), nil
}

// Drop discards the cart without counting it as a user mutation, e.g. on logout.
func (s *service) Drop(ctx context.Context, visitorID string) error {
	if err := s.store.Delete(ctx, visitorID); err != nil {
		return unavailable(err, "drop cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, visitorID string) (*Cart, error) {
	c, err := s.store.Load(ctx, visitorID)
	if err != nil {
		return nil, unavailable(err, "load cart")
	}
	return c, nil
}

func (s *service) save(ctx context.Context, visitorID string, c *Cart) error {
	if err := s.store.Save(ctx, visitorID, c); err != nil {
		return unavailable(err, "save cart")
	}
	return nil
}

func (s *service) count(op enums.CartOperation) {
	if s.metrics != nil {
		s.metrics.IncCartOperation(op.String())
	}
}

func unavailable(err error, step string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unavailable").
		WithDetails(map[string]any{"step": step})
}
