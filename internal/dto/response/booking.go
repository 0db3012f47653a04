package response

import "time"

type BookingResponse struct {
	Step           string            `json:"step"`
	Services       []ServiceResponse `json:"services"`
	Date           *string           `json:"date"`
	Time           *string           `json:"time"`
	Quote          QuoteResponse     `json:"quote"`
	SelectedCoupon *CouponResponse   `json:"selected_coupon"`
	Receipt        *ReceiptResponse  `json:"receipt,omitempty"`
	Overlay        OverlayResponse   `json:"overlay"`
}

type QuoteResponse struct {
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
	TotalMinutes  int     `json:"total_minutes"`
	TotalDuration string  `json:"total_duration"`
	Currency      string  `json:"currency,omitempty"`
}

type ReceiptResponse struct {
	BookingNumber string            `json:"booking_number"`
	Services      []ServiceResponse `json:"services"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Quote         QuoteResponse     `json:"quote"`
	CouponCode    *string           `json:"coupon_code,omitempty"`
	CompletedAt   time.Time         `json:"completed_at"`
}

type SlotsResponse struct {
	Dates     []string `json:"dates"`
	TimeSlots []string `json:"time_slots"`
}
