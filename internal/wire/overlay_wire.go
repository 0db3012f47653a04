package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOverlay(r chi.Router, overlayHandler *adaptor.OverlayHandler) {
	r.Route("/api/overlay", func(r chi.Router) {
		r.Get("/", overlayHandler.GetState)
		r.Post("/open", overlayHandler.Open)
		r.Post("/close", overlayHandler.Close)
		r.Post("/dismiss", overlayHandler.Dismiss)
	})
}
