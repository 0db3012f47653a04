package usecase

import (
	"time"

	"salon-booking/internal/data/repository"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog CatalogService
	Booking BookingService
	Coupon  CouponService
	Overlay OverlayService

	Sessions *Sessions
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	idle := time.Duration(config.Booking.SessionIdleMinutes) * time.Minute
	sessions := NewSessions(repo.Coupon, idle, log)

	return &Service{
		Catalog:  NewCatalogService(repo, sessions, log),
		Booking:  NewBookingService(repo, sessions, config.Booking, log),
		Coupon:   NewCouponService(repo, sessions, log),
		Overlay:  NewOverlayService(sessions, log),
		Sessions: sessions,
	}
}
