package response

import "time"

type CouponResponse struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discount_type"`
	DiscountValue     float64   `json:"discount_value"`
	MinOrderAmount    *float64  `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *float64  `json:"max_discount_amount,omitempty"`
	ExpiryDate        time.Time `json:"expiry_date"`
	IsUsed            bool      `json:"is_used"`
	IsValid           bool      `json:"is_valid"`
	PromotionID       string    `json:"promotion_id"`
	Image             *string   `json:"image,omitempty"`
	Selected          bool      `json:"selected"`
}

type CouponSelectionResponse struct {
	SelectedCoupon *CouponResponse `json:"selected_coupon"`
	Quote          QuoteResponse   `json:"quote"`
}
