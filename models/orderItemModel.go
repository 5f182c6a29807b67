package models

import "github.com/shopspring/decimal"

// OrderItem belongs to exactly one order; it has no lifecycle of its own.
// Price is copied from the product at order time unless the caller supplies
// a positive override.
type OrderItem struct {
	ID        int64            `json:"id"`
	OrderID   int64            `json:"order_id"`
	ProductID *int64           `json:"product_id"`
	Product   *Product         `json:"product,omitempty"`
	Quantity  *int             `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
}
