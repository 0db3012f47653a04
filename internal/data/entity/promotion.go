package entity

import "time"

type Promotion struct {
	Timestamps
	ID      string         `db:"id" yaml:"id"`
	Title   string         `db:"title" yaml:"title"`
	Message string         `db:"message" yaml:"message"`
	Image   *string        `db:"image" yaml:"image,omitempty"`
	Active  bool           `db:"active" yaml:"active"`
	Coupon  CouponTemplate `db:"-" yaml:"coupon"`
}

// CouponTemplate describes the coupon granted when a promotion is claimed.
type CouponTemplate struct {
	Code              string       `db:"coupon_code" yaml:"code"`
	Title             string       `db:"coupon_title" yaml:"title"`
	Description       string       `db:"coupon_description" yaml:"description"`
	DiscountType      DiscountType `db:"discount_type" yaml:"discount_type"`
	DiscountValue     float64      `db:"discount_value" yaml:"discount_value"`
	MinOrderAmount    *float64     `db:"min_order_amount" yaml:"min_order_amount,omitempty"`
	MaxDiscountAmount *float64     `db:"max_discount_amount" yaml:"max_discount_amount,omitempty"`
	ValidDays         int          `db:"valid_days" yaml:"valid_days"`
}

// Grant builds the coupon a claim at now produces.
func (p *Promotion) Grant(id string, now time.Time) Coupon {
	return Coupon{
		ID:                id,
		Code:              p.Coupon.Code,
		Title:             p.Coupon.Title,
		Description:       p.Coupon.Description,
		DiscountType:      p.Coupon.DiscountType,
		DiscountValue:     p.Coupon.DiscountValue,
		MinOrderAmount:    p.Coupon.MinOrderAmount,
		MaxDiscountAmount: p.Coupon.MaxDiscountAmount,
		ExpiryDate:        now.AddDate(0, 0, p.Coupon.ValidDays),
		PromotionID:       p.ID,
		Image:             p.Image,
	}
}
