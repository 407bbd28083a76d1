package models

import (
	"time"

	"github.com/niastore/nia-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order records a checkout submission. Lines are not persisted; total is the
// cart total at submission time.
type Order struct {
	ID            uint              `gorm:"column:id;primaryKey;autoIncrement"`
	UserName      string            `gorm:"column:user_name;not null"`
	Phone         string            `gorm:"column:phone;not null"`
	Address       string            `gorm:"column:address;not null"`
	MomoReference *string           `gorm:"column:momo_reference"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:Pending"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (Order) TableName() string { return "orders" }
