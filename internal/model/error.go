package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeNoContactNumber  = "NO_CONTACT_NUMBER"
	ErrCodeInvalidResponse  = "INVALID_RESPONSE"
	ErrCodeSnapshotNotFound = "SNAPSHOT_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "quantity must be greater than zero")
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "cart is empty")
	ErrNoContactNumber  = NewDomainError(ErrCodeNoContactNumber, "no checkout contact number configured")
	ErrInvalidResponse  = NewDomainError(ErrCodeInvalidResponse, "invalid response from server")
	ErrSnapshotNotFound = NewDomainError(ErrCodeSnapshotNotFound, "snapshot not found")
)

// APIError is a non-success HTTP answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewHTTPStatusError builds the fallback error used when the body carries no message.
func NewHTTPStatusError(status int) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP error! status: %d", status),
	}
}
