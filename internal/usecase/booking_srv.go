package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"salon-booking/internal/booking"
	"salon-booking/internal/coupon"
	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/metrics"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	GetBooking(ctx context.Context, clientID string) (*response.BookingResponse, error)
	GetQuote(ctx context.Context, clientID string) (*response.QuoteResponse, error)
	GetSlots(ctx context.Context) *response.SlotsResponse

	AddService(ctx context.Context, clientID string, req *request.AddServiceRequest) (*response.BookingResponse, error)
	RemoveService(ctx context.Context, clientID, serviceID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
	SetDate(ctx context.Context, clientID string, req *request.SetDateRequest) (*response.BookingResponse, error)
	SetTime(ctx context.Context, clientID string, req *request.SetTimeRequest) (*response.BookingResponse, error)

	Advance(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
	Back(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
	Confirm(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
	Close(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
	Reset(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	sessions *Sessions
	config   utils.BookingConfig
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, sessions *Sessions, config utils.BookingConfig, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		sessions: sessions,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBooking(ctx context.Context, clientID string) (*response.BookingResponse, error) {
	var resp *response.BookingResponse
	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		resp = s.snapshot(st)
		return nil
	})
	return resp, err
}

func (s *bookingService) GetQuote(ctx context.Context, clientID string) (*response.QuoteResponse, error) {
	var resp response.QuoteResponse
	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		resp = toQuoteResponse(s.quote(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSlots lists the bookable days, starting today, and the time slots
// offered on each of them.
func (s *bookingService) GetSlots(_ context.Context) *response.SlotsResponse {
	today := booking.CalendarDay(s.sessions.now())

	dates := make([]string, 0, s.config.DaysAhead)
	for i := range s.config.DaysAhead {
		dates = append(dates, today.AddDate(0, 0, i).Format(time.DateOnly))
	}

	return &response.SlotsResponse{
		Dates:     dates,
		TimeSlots: slices.Clone(s.config.TimeSlots),
	}
}

func (s *bookingService) AddService(ctx context.Context, clientID string, req *request.AddServiceRequest) (*response.BookingResponse, error) {
	service, err := s.repo.Service.FindByID(ctx, req.ServiceID)
	if err != nil {
		s.log.Error("Failed to find service",
			zap.Error(err),
			zap.String("service_id", req.ServiceID),
		)
		return nil, fmt.Errorf("find service %s: %w", req.ServiceID, err)
	}
	if service == nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, req.ServiceID)
	}

	return s.mutate(ctx, clientID, req.ScrollReport, "add service", func(st *clientState) error {
		st.workflow.AddService(*service)
		return nil
	})
}

func (s *bookingService) RemoveService(ctx context.Context, clientID, serviceID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	return s.mutate(ctx, clientID, req.ScrollReport, "remove service", func(st *clientState) error {
		st.workflow.RemoveService(serviceID)
		return nil
	})
}

func (s *bookingService) SetDate(ctx context.Context, clientID string, req *request.SetDateRequest) (*response.BookingResponse, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}

	today := booking.CalendarDay(s.sessions.now())
	if date.Before(today) || !date.Before(today.AddDate(0, 0, s.config.DaysAhead)) {
		return nil, fmt.Errorf("%w: %s is outside the booking window", ErrInvalidDate, req.Date)
	}

	return s.mutate(ctx, clientID, req.ScrollReport, "set date", func(st *clientState) error {
		st.workflow.SetDate(date)
		return nil
	})
}

func (s *bookingService) SetTime(ctx context.Context, clientID string, req *request.SetTimeRequest) (*response.BookingResponse, error) {
	if !slices.Contains(s.config.TimeSlots, req.Time) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSlot, req.Time)
	}

	return s.mutate(ctx, clientID, req.ScrollReport, "set time", func(st *clientState) error {
		st.workflow.SetTime(req.Time)
		return nil
	})
}

// Advance moves the workflow forward. Leaving Confirmation completes the
// booking exactly as Confirm does.
func (s *bookingService) Advance(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	return s.mutate(ctx, clientID, req.ScrollReport, "advance", func(st *clientState) error {
		if st.workflow.Step() == entity.StepConfirmation {
			return s.complete(ctx, st)
		}
		st.workflow.Advance()
		return nil
	})
}

func (s *bookingService) Back(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	return s.mutate(ctx, clientID, req.ScrollReport, "back", func(st *clientState) error {
		st.workflow.Regress()
		return nil
	})
}

func (s *bookingService) Confirm(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	return s.mutate(ctx, clientID, req.ScrollReport, "confirm", func(st *clientState) error {
		return s.complete(ctx, st)
	})
}

func (s *bookingService) Close(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	return s.mutate(ctx, clientID, req.ScrollReport, "close", func(st *clientState) error {
		closeBooking(st)
		return nil
	})
}

func (s *bookingService) Reset(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
	return s.mutate(ctx, clientID, req.ScrollReport, "reset", func(st *clientState) error {
		st.workflow.Reset()
		return nil
	})
}

// mutate applies fn to the client's workflow under its lock, then keeps the
// booking overlay in step with the workflow and returns the new snapshot.
func (s *bookingService) mutate(ctx context.Context, clientID string, report request.ScrollReport, op string, fn func(st *clientState) error) (*response.BookingResponse, error) {
	var resp *response.BookingResponse

	err := s.sessions.with(ctx, clientID, func(st *clientState) error {
		if report.ScrollOffset != nil {
			st.surface.Report(*report.ScrollOffset)
		}

		from := st.workflow.Step()
		if err := fn(st); err != nil {
			return err
		}
		to := st.workflow.Step()

		if from != to {
			metrics.BookingTransitions.WithLabelValues(string(from), string(to)).Inc()
			s.log.Debug("Booking step changed",
				zap.String("client_id", clientID),
				zap.String("operation", op),
				zap.String("from", string(from)),
				zap.String("to", string(to)),
			)
		}
		if to != entity.StepCompleted {
			st.receipt = nil
		}

		syncBookingOverlay(st)
		resp = s.snapshot(st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

// complete turns a confirmed booking into a receipt. The selected coupon, if
// still valid, is consumed before the step changes; a failed write leaves the
// booking in Confirmation.
func (s *bookingService) complete(ctx context.Context, st *clientState) error {
	if st.workflow.Step() != entity.StepConfirmation {
		return nil
	}

	now := s.sessions.now()
	session := st.workflow.Snapshot()
	applied := applicableCoupon(st.ledger, now)
	quote := pricing.NewQuote(session.SelectedServices, applied)

	var couponCode *string
	if applied != nil {
		if err := st.ledger.Consume(ctx, applied.ID); err != nil {
			s.log.Error("Failed to consume coupon",
				zap.Error(err),
				zap.String("client_id", st.id),
				zap.String("coupon_id", applied.ID),
			)
			return fmt.Errorf("consume coupon %s: %w", applied.ID, err)
		}
		metrics.CouponsConsumed.Inc()
		couponCode = &applied.Code
	}

	st.workflow.Advance()
	st.ledger.ClearSelection()

	st.receipt = &entity.BookingReceipt{
		BookingNumber: utils.GenerateBookingNumber(now),
		Services:      session.SelectedServices,
		Date:          *session.SelectedDate,
		Time:          *session.SelectedTime,
		Quote:         quote,
		CouponCode:    couponCode,
		CompletedAt:   now,
	}
	metrics.BookingsCompleted.Inc()

	s.log.Info("Booking completed",
		zap.String("client_id", st.id),
		zap.String("booking_number", st.receipt.BookingNumber),
		zap.Float64("total", quote.Total),
		zap.Stringp("coupon", couponCode),
	)
	return nil
}

func (s *bookingService) quote(st *clientState) entity.Quote {
	return pricing.NewQuote(st.workflow.Services(), applicableCoupon(st.ledger, s.sessions.now()))
}

func (s *bookingService) snapshot(st *clientState) *response.BookingResponse {
	now := s.sessions.now()
	session := st.workflow.Snapshot()

	resp := &response.BookingResponse{
		Step:     string(session.Step),
		Services: toServiceResponses(session.SelectedServices),
		Time:     session.SelectedTime,
		Quote:    toQuoteResponse(pricing.NewQuote(session.SelectedServices, applicableCoupon(st.ledger, now))),
		Overlay:  overlayResponse(st),
	}
	if session.SelectedDate != nil {
		d := session.SelectedDate.Format(time.DateOnly)
		resp.Date = &d
	}
	if selected := st.ledger.Selected(); selected != nil {
		c := toCouponResponse(selected, now, selected.ID)
		resp.SelectedCoupon = &c
	}
	if st.receipt != nil && session.Step == entity.StepCompleted {
		resp.Receipt = toReceiptResponse(st.receipt)
	}
	return resp
}

// applicableCoupon is the selected coupon when it can still be applied.
func applicableCoupon(ledger *coupon.Ledger, now time.Time) *entity.Coupon {
	selected := ledger.Selected()
	if selected == nil || !selected.IsValidAt(now) {
		return nil
	}
	return selected
}

// closeBooking handles the booking overlay's close control. Closing while
// the overlay is shown abandons the booking and the coupon choice.
func closeBooking(st *clientState) {
	if !st.workflow.PresentsOverlay() {
		return
	}
	st.workflow.Reset()
	st.ledger.ClearSelection()
	st.receipt = nil
}

// syncBookingOverlay keeps the booking overlay open exactly while the
// workflow is in a step that presents it.
func syncBookingOverlay(st *clientState) {
	presents := st.workflow.PresentsOverlay()
	open := st.overlays.IsOpen(entity.OverlayBooking)

	switch {
	case presents && !open:
		st.overlays.Open(entity.OverlayBooking)
		metrics.OverlayEvents.WithLabelValues(string(entity.OverlayBooking), "open").Inc()
	case !presents && open:
		st.overlays.Close(entity.OverlayBooking)
		metrics.OverlayEvents.WithLabelValues(string(entity.OverlayBooking), "close").Inc()
	}
}
