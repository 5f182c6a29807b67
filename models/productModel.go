package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name" validate:"required,min=1,max=255"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      *string         `json:"image_url"`
	IsActive      bool            `json:"is_active"`
	CategoryID    int64           `json:"category_id"`
	Category      *Category       `json:"category,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
