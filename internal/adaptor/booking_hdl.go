package adaptor

import (
	"context"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

type bookingAction func(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error)

// GetBooking handles GET /api/booking
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), clientID)
	if err != nil {
		writeServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetQuote handles GET /api/booking/quote
func (h *BookingHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	quote, err := h.service.GetQuote(r.Context(), clientID)
	if err != nil {
		writeServiceError(h.log, w, err, "get quote")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// GetSlots handles GET /api/booking/slots
func (h *BookingHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.GetSlots(r.Context()))
}

// AddService handles POST /api/booking/services
func (h *BookingHandler) AddService(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.AddServiceRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.AddService(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "add service")
		return
	}

	utils.ResponseSuccess(w, "Service added", booking)
}

// RemoveService handles DELETE /api/booking/services/{id}
func (h *BookingHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")

	h.runAction(w, r, "remove service", "Service removed",
		func(ctx context.Context, clientID string, req *request.BookingActionRequest) (*response.BookingResponse, error) {
			return h.service.RemoveService(ctx, clientID, serviceID, req)
		})
}

// SetDate handles PUT /api/booking/date
func (h *BookingHandler) SetDate(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.SetDateRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SetDate(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "set date")
		return
	}

	utils.ResponseSuccess(w, "Date selected", booking)
}

// SetTime handles PUT /api/booking/time
func (h *BookingHandler) SetTime(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.SetTimeRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SetTime(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "set time")
		return
	}

	utils.ResponseSuccess(w, "Time selected", booking)
}

// Advance handles POST /api/booking/advance
func (h *BookingHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, "advance booking", "success", h.service.Advance)
}

// Back handles POST /api/booking/back
func (h *BookingHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, "go back", "success", h.service.Back)
}

// Confirm handles POST /api/booking/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, "confirm booking", "Booking confirmed", h.service.Confirm)
}

// Close handles POST /api/booking/close
func (h *BookingHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, "close booking", "success", h.service.Close)
}

// Reset handles POST /api/booking/reset
func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, "reset booking", "Booking reset", h.service.Reset)
}

// runAction serves the endpoints whose body only reports the scroll offset.
func (h *BookingHandler) runAction(w http.ResponseWriter, r *http.Request, operation, message string, action bookingAction) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.BookingActionRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := action(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, operation)
		return
	}

	utils.ResponseSuccess(w, message, booking)
}
