package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPromotionAppliesAt(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		promotion Promotion
		want      bool
	}{
		{
			name: "active and inside window",
			promotion: Promotion{
				IsActive:  true,
				StartDate: now.Add(-time.Hour),
				EndDate:   now.Add(time.Hour),
			},
			want: true,
		},
		{
			name: "inactive",
			promotion: Promotion{
				IsActive:  false,
				StartDate: now.Add(-time.Hour),
				EndDate:   now.Add(time.Hour),
			},
			want: false,
		},
		{
			name: "not started yet",
			promotion: Promotion{
				IsActive:  true,
				StartDate: now.Add(time.Hour),
				EndDate:   now.Add(2 * time.Hour),
			},
			want: false,
		},
		{
			name: "already over",
			promotion: Promotion{
				IsActive:  true,
				StartDate: now.Add(-2 * time.Hour),
				EndDate:   now.Add(-time.Hour),
			},
			want: false,
		},
		{
			name: "window bounds are exclusive",
			promotion: Promotion{
				IsActive:  true,
				StartDate: now,
				EndDate:   now.Add(time.Hour),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.promotion.AppliesAt(now); got != tt.want {
				t.Errorf("AppliesAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromotionDiscountOn(t *testing.T) {
	pct := func(v float64) *float64 { return &v }
	amt := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name      string
		promotion Promotion
		total     string
		want      string
	}{
		{
			name:      "ten percent of a round total",
			promotion: Promotion{DiscountPercent: pct(10)},
			total:     "100.00",
			want:      "10.00",
		},
		{
			name:      "percentage rounds half-up to two decimals",
			promotion: Promotion{DiscountPercent: pct(5)},
			total:     "0.30",
			want:      "0.02",
		},
		{
			name:      "flat amount independent of total",
			promotion: Promotion{DiscountAmount: amt("15.00")},
			total:     "999.99",
			want:      "15.00",
		},
		{
			name:      "percentage takes precedence over flat amount",
			promotion: Promotion{DiscountPercent: pct(10), DiscountAmount: amt("50.00")},
			total:     "100.00",
			want:      "10.00",
		},
		{
			name:      "no discount configured",
			promotion: Promotion{},
			total:     "100.00",
			want:      "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			if got := tt.promotion.DiscountOn(total).StringFixed(2); got != tt.want {
				t.Errorf("DiscountOn(%s) = %s, want %s", tt.total, got, tt.want)
			}
		})
	}
}
