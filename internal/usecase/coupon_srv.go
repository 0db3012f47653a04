package usecase

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/metrics"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type CouponService interface {
	GetCoupons(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CouponResponse], error)
	GetValidCoupons(ctx context.Context, clientID string) ([]response.CouponResponse, error)
	ClaimCoupon(ctx context.Context, clientID, promotionID string) (*response.CouponResponse, error)
	SelectCoupon(ctx context.Context, clientID string, req *request.SelectCouponRequest) (*response.CouponSelectionResponse, error)
}

type couponService struct {
	repo     *repository.Repository
	sessions *Sessions
	log      *zap.Logger
}

func NewCouponService(repo *repository.Repository, sessions *Sessions, log *zap.Logger) CouponService {
	return &couponService{
		repo:     repo,
		sessions: sessions,
		log:      log.With(zap.String("service", "coupon")),
	}
}

// GetCoupons pages through every claimed coupon, used and expired included,
// in claim order.
func (s *couponService) GetCoupons(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CouponResponse], error) {
	var (
		page  []response.CouponResponse
		total int
	)

	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		now := s.sessions.now()
		selectedID := selectedCouponID(st)

		coupons := st.ledger.Coupons()
		total = len(coupons)

		for _, c := range utils.PageSlice(coupons, req.Page, req.Limit()) {
			page = append(page, toCouponResponse(&c, now, selectedID))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get coupons: %w", err)
	}

	if page == nil {
		page = []response.CouponResponse{}
	}
	return response.NewPaginatedResponse(page, req.Page, req.Limit(), int64(total)), nil
}

func (s *couponService) GetValidCoupons(ctx context.Context, clientID string) ([]response.CouponResponse, error) {
	valid := []response.CouponResponse{}

	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		now := s.sessions.now()
		selectedID := selectedCouponID(st)

		for c := range st.ledger.ValidCoupons() {
			valid = append(valid, toCouponResponse(&c, now, selectedID))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get valid coupons: %w", err)
	}

	return valid, nil
}

// ClaimCoupon grants the promotion's coupon. A promotion that already has a
// live coupon in the ledger yields ErrAlreadyClaimed.
func (s *couponService) ClaimCoupon(ctx context.Context, clientID, promotionID string) (*response.CouponResponse, error) {
	promotion, err := s.repo.Promotion.FindByID(ctx, promotionID)
	if err != nil {
		s.log.Error("Failed to find promotion",
			zap.Error(err),
			zap.String("promotion_id", promotionID),
		)
		return nil, fmt.Errorf("find promotion %s: %w", promotionID, err)
	}
	if promotion == nil || !promotion.Active {
		return nil, fmt.Errorf("%w: %s", ErrPromotionNotFound, promotionID)
	}

	var resp response.CouponResponse
	err = s.sessions.with(ctx, clientID, func(st *clientState) error {
		now := s.sessions.now()

		granted := promotion.Grant(utils.GenerateUUIDString(), now)
		added, err := st.ledger.Claim(ctx, granted)
		if err != nil {
			metrics.CouponClaims.WithLabelValues("error").Inc()
			return err
		}
		if !added {
			metrics.CouponClaims.WithLabelValues("duplicate").Inc()
			return fmt.Errorf("%w for promotion %s", ErrAlreadyClaimed, promotionID)
		}

		metrics.CouponClaims.WithLabelValues("claimed").Inc()
		resp = toCouponResponse(&granted, now, selectedCouponID(st))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("claim coupon: %w", err)
	}

	s.log.Info("Coupon claimed",
		zap.String("client_id", clientID),
		zap.String("promotion_id", promotionID),
		zap.String("coupon_id", resp.ID),
	)
	return &resp, nil
}

func (s *couponService) SelectCoupon(ctx context.Context, clientID string, req *request.SelectCouponRequest) (*response.CouponSelectionResponse, error) {
	var resp response.CouponSelectionResponse

	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		now := s.sessions.now()
		st.ledger.Select(req.CouponID)

		if selected := st.ledger.Selected(); selected != nil {
			c := toCouponResponse(selected, now, selected.ID)
			resp.SelectedCoupon = &c
		}
		resp.Quote = toQuoteResponse(pricing.NewQuote(st.workflow.Services(), applicableCoupon(st.ledger, now)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("select coupon: %w", err)
	}

	return &resp, nil
}

// liveCouponPromotions lists the promotions the client holds a usable coupon for.
func liveCouponPromotions(st *clientState, promotions []*entity.Promotion) map[string]bool {
	claimed := make(map[string]bool, len(promotions))
	for _, p := range promotions {
		claimed[p.ID] = st.ledger.HasLiveCoupon(p.ID)
	}
	return claimed
}

func selectedCouponID(st *clientState) string {
	if selected := st.ledger.Selected(); selected != nil {
		return selected.ID
	}
	return ""
}
