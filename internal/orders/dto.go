package orders

import (
	"time"

	"github.com/niastore/nia-storefront/pkg/db/models"
	"github.com/niastore/nia-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderDTO is the public representation of an order.
type OrderDTO struct {
	ID            uint              `json:"id"`
	UserName      string            `json:"user_name"`
	Phone         string            `json:"phone"`
	Address       string            `json:"address"`
	MomoReference *string           `json:"momo_reference,omitempty"`
	Total         string            `json:"total"`
	Status        enums.OrderStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CreateOrderInput carries the customer fields plus the cart total at submission time.
type CreateOrderInput struct {
	UserName      string
	Phone         string
	Address       string
	MomoReference *string
	Total         decimal.Decimal
}

func (in CreateOrderInput) ToModel() *models.Order {
	return &models.Order{
		UserName:      in.UserName,
		Phone:         in.Phone,
		Address:       in.Address,
		MomoReference: in.MomoReference,
		Total:         in.Total.Round(2),
		Status:        enums.OrderStatusPending,
	}
}

func FromModel(o *models.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID,
		UserName:      o.UserName,
		Phone:         o.Phone,
		Address:       o.Address,
		MomoReference: o.MomoReference,
		Total:         o.Total.StringFixed(2),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

func FromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
