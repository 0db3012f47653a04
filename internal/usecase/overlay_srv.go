package usecase

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/metrics"

	"go.uber.org/zap"
)

type OverlayService interface {
	GetState(ctx context.Context, clientID string) (*response.OverlayResponse, error)
	Open(ctx context.Context, clientID string, req *request.OpenOverlayRequest) (*response.OverlayResponse, error)
	Close(ctx context.Context, clientID string, req *request.CloseOverlayRequest) (*response.OverlayResponse, error)
	Dismiss(ctx context.Context, clientID string, req *request.DismissOverlayRequest) (*response.OverlayResponse, error)
}

type overlayService struct {
	sessions *Sessions
	log      *zap.Logger
}

func NewOverlayService(sessions *Sessions, log *zap.Logger) OverlayService {
	return &overlayService{
		sessions: sessions,
		log:      log.With(zap.String("service", "overlay")),
	}
}

func (s *overlayService) GetState(ctx context.Context, clientID string) (*response.OverlayResponse, error) {
	var resp response.OverlayResponse
	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		resp = overlayResponse(st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get overlay state: %w", err)
	}
	return &resp, nil
}

// Open shows an overlay. The booking overlay follows the booking workflow
// and cannot be opened on its own.
func (s *overlayService) Open(ctx context.Context, clientID string, req *request.OpenOverlayRequest) (*response.OverlayResponse, error) {
	kind := entity.OverlayKind(req.Kind)

	return s.apply(ctx, clientID, "open", func(st *clientState) {
		st.surface.Report(req.ScrollOffset)

		if kind == entity.OverlayBooking {
			syncBookingOverlay(st)
			return
		}

		st.overlays.Open(kind)
		metrics.OverlayEvents.WithLabelValues(string(kind), "open").Inc()
	})
}

func (s *overlayService) Close(ctx context.Context, clientID string, req *request.CloseOverlayRequest) (*response.OverlayResponse, error) {
	kind := entity.OverlayKind(req.Kind)

	return s.apply(ctx, clientID, "close", func(st *clientState) {
		if !st.overlays.IsOpen(kind) {
			return
		}
		st.overlays.Close(kind)
		metrics.OverlayEvents.WithLabelValues(string(kind), "close").Inc()
	})
}

func (s *overlayService) Dismiss(ctx context.Context, clientID string, req *request.DismissOverlayRequest) (*response.OverlayResponse, error) {
	trigger := entity.DismissTrigger(req.Trigger)

	return s.apply(ctx, clientID, "dismiss", func(st *clientState) {
		if kind, ok := st.overlays.Dismiss(trigger); ok {
			metrics.OverlayEvents.WithLabelValues(string(kind), "dismiss").Inc()
		}
	})
}

// apply runs fn and then settles the booking workflow: if the booking
// overlay was closed underneath it, the booking is abandoned the same way
// its close control does.
func (s *overlayService) apply(ctx context.Context, clientID, op string, fn func(st *clientState)) (*response.OverlayResponse, error) {
	var resp response.OverlayResponse

	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		fn(st)

		if st.workflow.PresentsOverlay() && !st.overlays.IsOpen(entity.OverlayBooking) {
			s.log.Debug("Booking overlay closed, abandoning booking",
				zap.String("client_id", clientID),
				zap.String("step", string(st.workflow.Step())),
			)
			closeBooking(st)
		}

		resp = overlayResponse(st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s overlay: %w", op, err)
	}

	return &resp, nil
}
