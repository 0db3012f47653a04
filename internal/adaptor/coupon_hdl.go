package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CouponHandler struct {
	service usecase.CouponService
	log     *zap.Logger
}

func NewCouponHandler(service usecase.CouponService, log *zap.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		log:     log.With(zap.String("handler", "coupon")),
	}
}

// GetCoupons handles GET /api/coupons?page=&per_page=
func (h *CouponHandler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	coupons, err := h.service.GetCoupons(r.Context(), clientID, req)
	if err != nil {
		writeServiceError(h.log, w, err, "get coupons")
		return
	}

	utils.ResponseSuccess(w, "success", coupons)
}

// GetValidCoupons handles GET /api/coupons/valid
func (h *CouponHandler) GetValidCoupons(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	coupons, err := h.service.GetValidCoupons(r.Context(), clientID)
	if err != nil {
		writeServiceError(h.log, w, err, "get valid coupons")
		return
	}

	utils.ResponseSuccess(w, "success", coupons)
}

// ClaimCoupon handles POST /api/promotions/{id}/claim
func (h *CouponHandler) ClaimCoupon(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	coupon, err := h.service.ClaimCoupon(r.Context(), clientID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.log, w, err, "claim coupon")
		return
	}

	utils.ResponseCreated(w, "Coupon claimed", coupon)
}

// SelectCoupon handles PUT /api/coupons/selection
func (h *CouponHandler) SelectCoupon(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.SelectCouponRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	selection, err := h.service.SelectCoupon(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "select coupon")
		return
	}

	utils.ResponseSuccess(w, "success", selection)
}
