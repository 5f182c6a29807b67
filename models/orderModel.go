package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	User        *User           `json:"user,omitempty"`
	TableID     *int64          `json:"table_id"`
	Table       *Table          `json:"table,omitempty"`
	PromotionID *int64          `json:"promotion_id,omitempty"`
	Promotion   *Promotion      `json:"promotion,omitempty"`
	OrderItems  []OrderItem     `json:"order_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
