package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a purchasable catalogue item.
type Product struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string          `gorm:"column:name;not null"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Image         string          `gorm:"column:image;not null"`
	Category      string          `gorm:"column:category;not null"`
	Description   *string         `gorm:"column:description"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string { return "products" }
