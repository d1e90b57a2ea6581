package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:           "Preflight request",
			method:         http.MethodOptions,
			expectedStatus: http.StatusNoContent,
			expectHandler:  false,
		},
		{
			name:           "GET request",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "POST request",
			method:         http.MethodPost,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := CORS(testHandler)

			req := httptest.NewRequest(tt.method, "/test", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, X-API-Key, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	logger := zerolog.Nop()
	validAPIKey := "test-api-key-123"

	tests := []struct {
		name           string
		path           string
		apiKey         string
		expectedStatus int
		expectHandler  bool
		expectedReason string
	}{
		{
			name:           "Valid API key",
			path:           "/api/cart",
			apiKey:         validAPIKey,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Invalid API key",
			path:           "/api/cart",
			apiKey:         "invalid-key",
			expectedStatus: http.StatusUnauthorized,
			expectHandler:  false,
			expectedReason: "invalid API key",
		},
		{
			name:           "Missing API key",
			path:           "/api/cart",
			apiKey:         "",
			expectedStatus: http.StatusUnauthorized,
			expectHandler:  false,
			expectedReason: "missing API key",
		},
		{
			name:           "Health check bypasses auth",
			path:           "/health",
			apiKey:         "",
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := APIKeyAuth(validAPIKey, logger)(testHandler)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error": "unauthorised: `+tt.expectedReason+`"}`, w.Body.String())
			}
		})
	}
}

func TestLogging(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		method         string
		path           string
		handlerStatus  int
		expectedStatus int
	}{
		{
			name:           "Successful request",
			method:         http.MethodGet,
			path:           "/api/cart",
			handlerStatus:  http.StatusOK,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found request",
			method:         http.MethodGet,
			path:           "/api/unknown",
			handlerStatus:  http.StatusNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Server error",
			method:         http.MethodPost,
			path:           "/api/checkout/order",
			handlerStatus:  http.StatusInternalServerError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			})

			handler := Logging(logger)(testHandler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		shouldPanic    bool
		panicValue     interface{}
		expectedStatus int
	}{
		{
			name:           "No panic",
			shouldPanic:    false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Panic with string",
			shouldPanic:    true,
			panicValue:     "something went wrong",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Panic with error",
			shouldPanic:    true,
			panicValue:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.shouldPanic {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Recovery(logger)(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			// Ensure we don't panic in the test
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.shouldPanic {
				assert.Contains(t, w.Body.String(), "internal server error")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name       string
		incoming   string
		expectSame bool
	}{
		{name: "Generates id", incoming: ""},
		{name: "Reuses incoming id", incoming: "req-123", expectSame: true},
		{name: "Replaces oversized id", incoming: strings.Repeat("x", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()

			RequestID(testHandler).ServeHTTP(w, req)

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
			if tt.expectSame {
				assert.Equal(t, tt.incoming, seen)
			} else {
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	n, err := rw.Write([]byte(`{"ok":true}`))

	assert.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, 11, rw.written)
}

func TestResponseWriter_CapturesStatus(t *testing.T) {
	for _, code := range []int{http.StatusCreated, http.StatusNotFound, http.StatusBadGateway} {
		w := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		rw.WriteHeader(code)

		assert.Equal(t, code, rw.statusCode)
		assert.Equal(t, code, w.Code)
	}
}

func TestLogging_RecordsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	handler := Logging(logger)(RequestID(testHandler))

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/order", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "req-7", entry["request_id"])
	assert.Equal(t, float64(http.StatusBadGateway), entry["status"])
}
