package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// CatalogService is the catalog view consumed by the HTTP layer.
type CatalogService interface {
	Page() catalog.Page
	Loading() bool
	Load(ctx context.Context) (catalog.Page, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

// catalogResponse is the storefront page plus the loading flag.
type catalogResponse struct {
	catalog.Page
	Loading bool `json:"loading"`
}

// CatalogHandler handles catalog and product HTTP requests.
type CatalogHandler struct {
	catalog CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Get handles GET /api/catalog requests.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Page:    h.catalog.Page(),
		Loading: h.catalog.Loading(),
	})
}

// Reload handles POST /api/catalog/reload requests.
func (h *CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Load(r.Context())
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, catalog.ErrLoadFailed.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, catalogResponse{Page: page})
}

// ListProducts handles GET /api/products requests.
// Optional query parameters: category (id or name), featured (bool).
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{Category: r.URL.Query().Get("category")}

	if featured := r.URL.Query().Get("featured"); featured != "" {
		value, err := strconv.ParseBool(featured)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid featured parameter", h.logger)
			return
		}
		filter.Featured = value
	}

	writeJSON(w, http.StatusOK, catalog.FilterProducts(h.catalog.Page().Products, filter))
}

// GetProduct handles GET /api/products/{id} requests.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	if productID == "" {
		writeError(w, r, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	product, err := h.catalog.Product(r.Context(), productID)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found", h.logger)
			return
		}
		writeError(w, r, statusFor(err), "failed to retrieve product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListCategories handles GET /api/categories requests.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Page().Categories)
}
