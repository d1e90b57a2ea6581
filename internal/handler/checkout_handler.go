package handler

import (
	"errors"
	"net/http"

	"storefront/internal/checkout"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// WhatsAppCheckoutResponse carries the deep link the client should open.
type WhatsAppCheckoutResponse struct {
	URL string `json:"url"`
}

// OrderCheckoutResponse carries the id of a submitted order.
type OrderCheckoutResponse struct {
	OrderID     string `json:"order_id"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
	Message     string `json:"message,omitempty"`
}

// CheckoutHandler handles checkout HTTP requests.
type CheckoutHandler struct {
	service checkout.Service
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service checkout.Service, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// WhatsApp handles POST /api/checkout/whatsapp requests.
func (h *CheckoutHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.Handoff(r.Context())
	if err != nil {
		h.writeCheckoutError(w, r, err, "failed to start checkout")
		return
	}

	writeJSON(w, http.StatusOK, WhatsAppCheckoutResponse{URL: link})
}

// Order handles POST /api/checkout/order requests.
func (h *CheckoutHandler) Order(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.SubmitOrder(r.Context())
	if err != nil {
		h.writeCheckoutError(w, r, err, "failed to place order. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, OrderCheckoutResponse{
		OrderID:     order.ID.String(),
		WhatsAppURL: order.WhatsAppURL,
		Message:     order.Message,
	})
}

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, r, statusFor(err), domainErr.Message, h.logger)
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeError(w, r, http.StatusBadGateway, apiErr.Message, h.logger)
		return
	}

	h.logger.Error().Err(err).Msg("checkout failed")
	writeError(w, r, http.StatusInternalServerError, fallback, h.logger)
}
