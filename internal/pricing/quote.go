package pricing

import (
	"salon-booking/internal/coupon"
	"salon-booking/internal/data/entity"
)

// NewQuote derives subtotal, discount, total and duration for the selected
// services. selected may be nil.
func NewQuote(services []entity.Service, selected *entity.Coupon) entity.Quote {
	subtotal := Subtotal(services)
	discount := coupon.ComputeDiscount(subtotal, selected)

	return entity.Quote{
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        subtotal - discount,
		TotalMinutes: TotalMinutes(services),
		Currency:     Currency(services),
	}
}
