package adaptor

import (
	"net/http"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetServices handles GET /api/services?category=
func (h *CatalogHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	services, err := h.service.GetServices(r.Context(), category)
	if err != nil {
		writeServiceError(h.log, w, err, "get services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id}
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	service, err := h.service.GetService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.log, w, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// GetCategories handles GET /api/categories
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		writeServiceError(h.log, w, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// GetPromotions handles GET /api/promotions
func (h *CatalogHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	clientID, ok := requestClientID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Missing client id", nil)
		return
	}

	promotions, err := h.service.GetPromotions(r.Context(), clientID)
	if err != nil {
		writeServiceError(h.log, w, err, "get promotions")
		return
	}

	utils.ResponseSuccess(w, "success", promotions)
}
