package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/internal/orders"
	"github.com/niastore/nia-storefront/pkg/db"
	"github.com/niastore/nia-storefront/pkg/enums"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/niastore/nia-storefront/pkg/logger"
	"gorm.io/gorm"
)

const emptyCartMessage = "Your cart is empty!"

// Service places orders from the visitor cart.
type Service interface {
	Summary(ctx context.Context, visitorID string) (*cart.View, error)
	Execute(ctx context.Context, visitorID string, input Input) (*orders.OrderDTO, error)
}

// Input captures the customer fields submitted at checkout.
type Input struct {
	UserName      string
	Phone         string
	Address       string
	MomoReference *string
}

type checkoutMetrics interface {
	IncOrderCreated()
	IncCartOperation(op string)
}

// ServiceParams groups checkout dependencies. Logger and Metrics are optional.
type ServiceParams struct {
	DB      db.TxRunner
	Carts   cart.Store
	Logger  *logger.Logger
	Metrics checkoutMetrics
}

type service struct {
	db      db.TxRunner
	carts   cart.Store
	logg    *logger.Logger
	metrics checkoutMetrics
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		db:      params.DB,
		carts:   params.Carts,
		logg:    logg,
		metrics: params.Metrics,
	}, nil
}

func (s *service) Summary(ctx context.Context, visitorID string) (*cart.View, error) {
	c, err := s.carts.Load(ctx, visitorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unavailable")
	}
	return cart.NewView(c), nil
}

// Execute persists one Pending order with the cart total and empties the cart.
// The cart is deleted inside the order transaction; a failed delete rolls the
// order back, and a failed commit after the delete writes the cart back.
func (s *service) Execute(ctx context.Context, visitorID string, input Input) (*orders.OrderDTO, error) {
	input = normalize(input)
	if err := validate(input); err != nil {
		return nil, err
	}

	current, err := s.carts.Load(ctx, visitorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unavailable")
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, emptyCartMessage).WithRedirect("/products")
	}
	snapshot := current.Clone()

	var (
		created *orders.OrderDTO
		cleared bool
	)
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := orders.NewRepository(tx).Create(ctx, orders.CreateOrderInput{
			UserName:      input.UserName,
			Phone:         input.Phone,
			Address:       input.Address,
			MomoReference: input.MomoReference,
			Total:         snapshot.Total(),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order store unavailable")
		}
		if err := s.carts.Delete(ctx, visitorID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart store unavailable").
				WithDetails(map[string]any{"step": "clear cart"})
		}
		cleared = true
		dto := orders.FromModel(order)
		created = &dto
		return nil
	})
	if err != nil {
		if cleared {
			s.restore(ctx, visitorID, snapshot)
		}
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order store unavailable")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncOrderCreated()
		s.metrics.IncCartOperation(enums.CartOperationCheckout.String())
	}
	return created, nil
}

func (s *service) restore(ctx context.Context, visitorID string, snapshot *cart.Cart) {
	if err := s.carts.Save(context.WithoutCancel(ctx), visitorID, snapshot); err != nil {
		s.logg.Error(ctx, "checkout.cart_restore_failed", err)
		return
	}
	s.logg.Warn(ctx, "checkout.cart_restored")
}

func normalize(in Input) Input {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if in.MomoReference != nil {
		ref := strings.TrimSpace(*in.MomoReference)
		if ref == "" {
			in.MomoReference = nil
		} else {
			in.MomoReference = &ref
		}
	}
	return in
}

func validate(in Input) error {
	details := map[string]string{}
	if in.UserName == "" {
		details["user_name"] = "is required"
	}
	if in.Phone == "" {
		details["phone"] = "is required"
	}
	if in.Address == "" {
		details["address"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
