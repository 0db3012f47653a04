package request

// SelectCouponRequest toggles the selection. An empty id clears it.
type SelectCouponRequest struct {
	CouponID string `json:"coupon_id"`
}
