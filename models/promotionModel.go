package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion carries either a percentage discount or a flat amount; the
// percentage wins when both are set.
type Promotion struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name" validate:"required,min=1,max=255"`
	DiscountPercent *float64         `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// AppliesAt reports whether the promotion is usable at the given instant:
// active and strictly inside its [StartDate, EndDate] window.
func (p *Promotion) AppliesAt(now time.Time) bool {
	return p.IsActive && now.After(p.StartDate) && now.Before(p.EndDate)
}

// DiscountOn computes the discount the promotion grants on total.
// A percentage is checked first and rounded half-up to 2 decimals; a flat
// amount is taken as configured, independent of the total.
func (p *Promotion) DiscountOn(total decimal.Decimal) decimal.Decimal {
	if p.DiscountPercent != nil {
		return total.Mul(decimal.NewFromFloat(*p.DiscountPercent)).
			Div(decimal.NewFromInt(100)).
			Round(2)
	}
	if p.DiscountAmount != nil {
		return *p.DiscountAmount
	}
	return decimal.Zero
}
