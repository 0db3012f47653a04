package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCoupon(r chi.Router, couponHandler *adaptor.CouponHandler) {
	// POST /api/promotions/{id}/claim - 409 while a live coupon exists
	r.Post("/api/promotions/{id}/claim", couponHandler.ClaimCoupon)

	r.Route("/api/coupons", func(r chi.Router) {
		r.Get("/", couponHandler.GetCoupons)
		r.Get("/valid", couponHandler.GetValidCoupons)
		r.Put("/selection", couponHandler.SelectCoupon)
	})
}
