package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RequestIDHeader carries a per-request id to the backend.
const RequestIDHeader = "X-Request-ID"

// Client defines the backend operations the storefront consumes.
type Client interface {
	// ListProducts returns the product list, normalized to a flat slice.
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetProduct returns a single product by id.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// ListCategories returns the category list, normalized to a flat slice.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// CreateOrder submits an order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetContactNumber returns the checkout WhatsApp number.
	GetContactNumber(ctx context.Context) (*model.ContactNumber, error)
}

// httpClient implements Client over the backend's REST API.
type httpClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// Options configures the HTTP client.
type Options struct {
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// Transport overrides the base round tripper. Default: http.DefaultTransport
	Transport http.RoundTripper
}

// New creates a backend client rooted at baseURL (e.g. "https://shop.example.com/api").
func New(baseURL string, opts Options, logger zerolog.Logger) Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(base),
		},
		logger: logger.With().Str("component", "api-client").Logger(),
	}
}

func (c *httpClient) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Featured {
		query.Set("featured", "true")
	}

	path := "/products/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	products, skipped := normalizeList[model.Product](raw)
	if skipped > 0 {
		c.logger.Warn().Int("skipped", skipped).Msg("skipped undecodable products")
	}
	c.logger.Debug().Int("count", len(products)).Msg("products fetched")
	return products, nil
}

func (c *httpClient) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product ID is required")
	}

	var product model.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id)+"/", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *httpClient) ListCategories(ctx context.Context) ([]model.Category, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &raw); err != nil {
		return nil, err
	}
	categories, skipped := normalizeList[model.Category](raw)
	if skipped > 0 {
		c.logger.Warn().Int("skipped", skipped).Msg("skipped undecodable categories")
	}
	return categories, nil
}

func (c *httpClient) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}

	var resp model.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders/create/", req, &resp); err != nil {
		return nil, err
	}

	c.logger.Info().Str("order_id", resp.ID.String()).Msg("order created")
	return &resp, nil
}

func (c *httpClient) GetContactNumber(ctx context.Context) (*model.ContactNumber, error) {
	var contact model.ContactNumber
	if err := c.do(ctx, http.MethodGet, "/whatsapp/", nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// do performs a request and decodes a successful JSON answer into out.
func (c *httpClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("request failed")
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend response")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read response body")
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseErrorBody(resp.StatusCode, data)
		logger.Error().
			Int("status", resp.StatusCode).
			Str("error", apiErr.Message).
			Msg("API error")
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.Error().Err(err).Msg("error parsing JSON response")
		return model.ErrInvalidResponse
	}

	return nil
}

// parseErrorBody extracts a message from an error answer: the "detail" field
// when present, the compact JSON body otherwise, or a status fallback when
// the body is not JSON.
func parseErrorBody(status int, data []byte) *model.APIError {
	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return model.NewHTTPStatusError(status)
	}

	if obj, ok := body.(map[string]any); ok {
		if detail, ok := obj["detail"].(string); ok && detail != "" {
			return &model.APIError{StatusCode: status, Message: detail}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return model.NewHTTPStatusError(status)
	}

	return &model.APIError{StatusCode: status, Message: compact.String()}
}
