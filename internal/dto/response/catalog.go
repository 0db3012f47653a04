package response

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Duration        string  `json:"duration"`
	Price           string  `json:"price"`
	Category        string  `json:"category"`
	Description     *string `json:"description,omitempty"`
	FemaleOnly      bool    `json:"female_only"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PromotionResponse struct {
	ID      string                 `json:"id"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Image   *string                `json:"image,omitempty"`
	Coupon  CouponTemplateResponse `json:"coupon"`
	Claimed bool                   `json:"claimed"`
}

type CouponTemplateResponse struct {
	Code              string   `json:"code"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	DiscountType      string   `json:"discount_type"`
	DiscountValue     float64  `json:"discount_value"`
	MinOrderAmount    *float64 `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
	ValidDays         int      `json:"valid_days"`
}
