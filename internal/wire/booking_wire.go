package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/booking", func(r chi.Router) {
		r.Get("/", bookingHandler.GetBooking)
		r.Get("/quote", bookingHandler.GetQuote)
		r.Get("/slots", bookingHandler.GetSlots)

		// service selection
		r.Post("/services", bookingHandler.AddService)
		r.Delete("/services/{id}", bookingHandler.RemoveService)

		// date and time
		r.Put("/date", bookingHandler.SetDate)
		r.Put("/time", bookingHandler.SetTime)

		// step navigation and the booking overlay controls
		r.Post("/advance", bookingHandler.Advance)
		r.Post("/back", bookingHandler.Back)
		r.Post("/confirm", bookingHandler.Confirm)
		r.Post("/close", bookingHandler.Close)
		r.Post("/reset", bookingHandler.Reset)
	})
}
