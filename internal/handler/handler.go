package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to tell the client.
		return
	}
}

// writeError writes an error response with the given status code and message.
// The request id, when present, is returned as the correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())

	event := logger.Error()
	if status < http.StatusInternalServerError {
		event = logger.Warn()
	}
	event.
		Str("error", message).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{Error: message, CorrelationID: requestID})
}

// statusFor maps domain and backend errors to an HTTP status.
func statusFor(err error) int {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case model.ErrCodeProductNotFound:
			return http.StatusNotFound
		case model.ErrCodeInvalidQuantity, model.ErrCodeEmptyCart:
			return http.StatusBadRequest
		case model.ErrCodeNoContactNumber:
			return http.StatusServiceUnavailable
		case model.ErrCodeInvalidResponse:
			return http.StatusBadGateway
		}
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// decodeJSON decodes a request body of at most 1 MiB into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
