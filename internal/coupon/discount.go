package coupon

import (
	"math"

	"salon-booking/internal/data/entity"
)

// ComputeDiscount returns the amount a coupon takes off subtotal. Percentage
// discounts are capped at MaxDiscountAmount, fixed discounts at the subtotal,
// and the result never leaves [0, subtotal]. A nil coupon yields 0.
func ComputeDiscount(subtotal float64, c *entity.Coupon) float64 {
	if c == nil || subtotal <= 0 {
		return 0
	}

	var discount float64
	switch c.DiscountType {
	case entity.DiscountTypePercentage:
		discount = subtotal * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil {
			discount = math.Min(discount, *c.MaxDiscountAmount)
		}
	case entity.DiscountTypeFixed:
		discount = math.Min(c.DiscountValue, subtotal)
	default:
		return 0
	}

	return math.Max(0, math.Min(discount, subtotal))
}
