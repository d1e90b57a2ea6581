package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Catalog   *handler.CatalogHandler
	Cart      *handler.CartHandler
	Favorites *handler.FavoritesHandler
	Checkout  *handler.CheckoutHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// An empty apiKey leaves the API open.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check endpoint (no authentication required)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/catalog", h.Catalog.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/catalog/reload", h.Catalog.Reload).Methods(http.MethodPost)
	r.HandleFunc("/api/products", h.Catalog.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", h.Catalog.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", h.Catalog.ListCategories).Methods(http.MethodGet)

	r.HandleFunc("/api/cart", h.Cart.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.Cart.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/items", h.Cart.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id}", h.Cart.UpdateQuantity).Methods(http.MethodPut)
	r.HandleFunc("/api/cart/items/{id}", h.Cart.RemoveItem).Methods(http.MethodDelete)

	r.HandleFunc("/api/favorites", h.Favorites.List).Methods(http.MethodGet)
	r.HandleFunc("/api/favorites/{id}", h.Favorites.Toggle).Methods(http.MethodPost)

	r.HandleFunc("/api/checkout/whatsapp", h.Checkout.WhatsApp).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout/order", h.Checkout.Order).Methods(http.MethodPost)

	r.NotFoundHandler = jsonStatus(http.StatusNotFound, "not found")
	r.MethodNotAllowedHandler = jsonStatus(http.StatusMethodNotAllowed, "method not allowed")

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS -> APIKeyAuth
	var handler http.Handler = r
	if apiKey != "" {
		handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	}
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return otelhttp.NewHandler(handler, "storefront",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func jsonStatus(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"error": "` + message + `"}`))
	})
}
