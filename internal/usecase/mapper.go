package usecase

import (
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/pricing"
)

func toServiceResponse(s *entity.Service) response.ServiceResponse {
	return response.ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Duration:        s.Duration,
		Price:           s.Price,
		Category:        s.Category,
		Description:     s.Description,
		FemaleOnly:      s.FemaleOnly,
		Amount:          s.Amount,
		Currency:        s.Currency,
		DurationMinutes: s.DurationMinutes,
	}
}

func toServiceResponses(services []entity.Service) []response.ServiceResponse {
	out := make([]response.ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, toServiceResponse(&services[i]))
	}
	return out
}

func toQuoteResponse(q entity.Quote) response.QuoteResponse {
	return response.QuoteResponse{
		Subtotal:      q.Subtotal,
		Discount:      q.Discount,
		Total:         q.Total,
		TotalMinutes:  q.TotalMinutes,
		TotalDuration: pricing.FormatDuration(q.TotalMinutes),
		Currency:      q.Currency,
	}
}

func toCouponResponse(c *entity.Coupon, now time.Time, selectedID string) response.CouponResponse {
	return response.CouponResponse{
		ID:                c.ID,
		Code:              c.Code,
		Title:             c.Title,
		Description:       c.Description,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		MinOrderAmount:    c.MinOrderAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		ExpiryDate:        c.ExpiryDate,
		IsUsed:            c.IsUsed,
		IsValid:           c.IsValidAt(now),
		PromotionID:       c.PromotionID,
		Image:             c.Image,
		Selected:          selectedID != "" && c.ID == selectedID,
	}
}

func toPromotionResponse(p *entity.Promotion, claimed bool) response.PromotionResponse {
	return response.PromotionResponse{
		ID:      p.ID,
		Title:   p.Title,
		Message: p.Message,
		Image:   p.Image,
		Coupon: response.CouponTemplateResponse{
			Code:              p.Coupon.Code,
			Title:             p.Coupon.Title,
			Description:       p.Coupon.Description,
			DiscountType:      string(p.Coupon.DiscountType),
			DiscountValue:     p.Coupon.DiscountValue,
			MinOrderAmount:    p.Coupon.MinOrderAmount,
			MaxDiscountAmount: p.Coupon.MaxDiscountAmount,
			ValidDays:         p.Coupon.ValidDays,
		},
		Claimed: claimed,
	}
}

func toReceiptResponse(r *entity.BookingReceipt) *response.ReceiptResponse {
	return &response.ReceiptResponse{
		BookingNumber: r.BookingNumber,
		Services:      toServiceResponses(r.Services),
		Date:          r.Date.Format(time.DateOnly),
		Time:          r.Time,
		Quote:         toQuoteResponse(r.Quote),
		CouponCode:    r.CouponCode,
		CompletedAt:   r.CompletedAt,
	}
}

// overlayResponse reads the coordinator state and takes any pending scroll
// restore, so the restore offset is delivered exactly once.
func overlayResponse(st *clientState) response.OverlayResponse {
	state := st.overlays.State()

	stack := make([]string, 0, len(state.Stack))
	for _, k := range state.Stack {
		stack = append(stack, string(k))
	}

	resp := response.OverlayResponse{
		IsAnyOpen:         state.IsAnyOpen,
		Stack:             stack,
		ScrollLocked:      st.surface.Locked(),
		SavedScrollOffset: state.SavedScrollOffset,
	}
	if top, ok := st.overlays.Top(); ok {
		t := string(top)
		resp.Top = &t
	}
	if offset, ok := st.surface.TakeRestore(); ok {
		resp.RestoreScrollTo = &offset
	}
	return resp
}
