package handler

import (
	"errors"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/model"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ProductID model.ID `json:"product_id"`
}

// UpdateQuantityRequest is the body of PUT /api/cart/items/{id}.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	cart    *cart.Store
	catalog CatalogService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store *cart.Store, catalog CatalogService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:    store,
		catalog: catalog,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, "product_id is required", h.logger)
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID.String())
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found", h.logger)
			return
		}
		writeError(w, r, statusFor(err), "failed to retrieve product", h.logger)
		return
	}

	if !h.cart.AddItem(r.Context(), *product) {
		writeError(w, r, http.StatusUnprocessableEntity, "product cannot be added to the cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// UpdateQuantity handles PUT /api/cart/items/{id} requests.
// A quantity below 1 removes the item.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	var req UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Quantity == nil {
		writeError(w, r, http.StatusBadRequest, "quantity is required", h.logger)
		return
	}

	if *req.Quantity < 1 {
		h.cart.RemoveItem(r.Context(), productID)
	} else if !h.cart.UpdateQuantity(r.Context(), productID, *req.Quantity) {
		writeError(w, r, http.StatusNotFound, "item not in cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}
