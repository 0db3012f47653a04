package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// GET /api/services?category= - service menu, optionally one category
	r.Get("/api/services", catalogHandler.GetServices)
	r.Get("/api/services/{id}", catalogHandler.GetService)

	// GET /api/categories - category tabs in display order
	r.Get("/api/categories", catalogHandler.GetCategories)

	// GET /api/promotions - active promotions, flagged when already claimed
	r.Get("/api/promotions", catalogHandler.GetPromotions)
}
