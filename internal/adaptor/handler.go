package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"salon-booking/internal/data/repository"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog *CatalogHandler
	Booking *BookingHandler
	Coupon  *CouponHandler
	Overlay *OverlayHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, log),
		Booking: NewBookingHandler(service.Booking, log),
		Coupon:  NewCouponHandler(service.Coupon, log),
		Overlay: NewOverlayHandler(service.Overlay, log),
	}
}

// requestClientID returns the id the ClientID middleware stored on the request.
func requestClientID(r *http.Request) (string, bool) {
	id, ok := utils.GetClientIDFromContext(r.Context())
	if !ok {
		return "", false
	}
	return id.String(), true
}

// decodeBody decodes a JSON body. An empty body leaves dst untouched unless
// required is set.
func decodeBody(r *http.Request, dst any, required bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && !required {
		return nil
	}
	return err
}

// writeServiceError maps usecase errors onto the response envelope.
func writeServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrServiceNotFound),
		errors.Is(err, usecase.ErrPromotionNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrAlreadyClaimed):
		log.Warn(operation+" failed - already claimed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, usecase.ErrAlreadyClaimed.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidSlot),
		errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrValidation):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrCorruptLedger):
		log.Error(operation+" failed - stored coupons unreadable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Stored coupons could not be read")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
