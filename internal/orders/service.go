package orders

import (
	"context"
	"fmt"

	"github.com/niastore/nia-storefront/pkg/db/models"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
)

// Service exposes the read-only order log.
type Service interface {
	List(ctx context.Context, limit int) ([]OrderDTO, error)
}

type orderLister interface {
	List(ctx context.Context, limit int) ([]models.Order, error)
}

type service struct {
	repo orderLister
}

func NewService(repo orderLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, limit int) ([]OrderDTO, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order store unavailable")
	}
	return FromModels(rows), nil
}
