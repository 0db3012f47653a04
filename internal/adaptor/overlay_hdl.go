package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type OverlayHandler struct {
	service usecase.OverlayService
	log     *zap.Logger
}

func NewOverlayHandler(service usecase.OverlayService, log *zap.Logger) *OverlayHandler {
	return &OverlayHandler{
		service: service,
		log:     log.With(zap.String("handler", "overlay")),
	}
}

// GetState handles GET /api/overlay
func (h *OverlayHandler) GetState(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	state, err := h.service.GetState(r.Context(), clientID)
	if err != nil {
		writeServiceError(h.log, w, err, "get overlay state")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// Open handles POST /api/overlay/open
func (h *OverlayHandler) Open(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.OpenOverlayRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.Open(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "open overlay")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// Close handles POST /api/overlay/close
func (h *OverlayHandler) Close(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.CloseOverlayRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.Close(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "close overlay")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}

// Dismiss handles POST /api/overlay/dismiss
func (h *OverlayHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	var req request.DismissOverlayRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.Dismiss(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "dismiss overlay")
		return
	}

	utils.ResponseSuccess(w, "success", state)
}
