package handler

import (
	"net/http"

	"storefront/internal/catalog"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// FavoriteResponse reports a product's favorite state after a toggle.
type FavoriteResponse struct {
	ProductID string `json:"product_id"`
	Favorite  bool   `json:"favorite"`
}

// FavoritesHandler handles favorites HTTP requests.
type FavoritesHandler struct {
	favorites *catalog.Favorites
	logger    zerolog.Logger
}

// NewFavoritesHandler creates a new favorites handler.
func NewFavoritesHandler(favorites *catalog.Favorites, logger zerolog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favorites,
		logger:    logger.With().Str("handler", "favorites").Logger(),
	}
}

// List handles GET /api/favorites requests.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.favorites.List())
}

// Toggle handles POST /api/favorites/{id} requests.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	favorite := h.favorites.Toggle(productID)

	h.logger.Debug().Str("product_id", productID).Bool("favorite", favorite).Msg("favorite toggled")

	writeJSON(w, http.StatusOK, FavoriteResponse{ProductID: productID, Favorite: favorite})
}
