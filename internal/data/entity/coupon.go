package entity

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Coupon is a discount grant claimed from a promotion. The json tags are the
// persisted record layout.
type Coupon struct {
	ID                string       `json:"id"`
	Code              string       `json:"code"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	DiscountType      DiscountType `json:"discountType"`
	DiscountValue     float64      `json:"discountValue"`
	MinOrderAmount    *float64     `json:"minOrderAmount,omitempty"`
	MaxDiscountAmount *float64     `json:"maxDiscountAmount,omitempty"`
	ExpiryDate        time.Time    `json:"expiryDate"`
	IsUsed            bool         `json:"isUsed"`
	PromotionID       string       `json:"promotionId"`
	Image             *string      `json:"image,omitempty"`
}

// IsValidAt reports whether the coupon is unused and expires strictly after now.
func (c *Coupon) IsValidAt(now time.Time) bool {
	return !c.IsUsed && c.ExpiryDate.After(now)
}
