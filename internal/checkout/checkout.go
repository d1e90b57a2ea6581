package checkout

import (
	"context"
	"fmt"

	"storefront/internal/apiclient"
	"storefront/internal/cart"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// ContactSource supplies the current checkout contact number.
type ContactSource interface {
	ContactNumber() string
}

// Service defines the checkout operations.
type Service interface {
	// Handoff builds the WhatsApp link for the current cart, hands it to the
	// opener and clears the cart. Returns the link.
	Handoff(ctx context.Context) (string, error)

	// SubmitOrder posts the current cart to the backend and removes the
	// ordered quantities from it on success.
	SubmitOrder(ctx context.Context) (*model.OrderResponse, error)
}

// Options configures the checkout service.
type Options struct {
	// BaseURL of the deep link. Default: "https://wa.me"
	BaseURL string

	Prices *PriceFormatter
	Opener Opener
}

type service struct {
	cart     *cart.Store
	contacts ContactSource
	client   apiclient.Client
	baseURL  string
	prices   *PriceFormatter
	opener   Opener
	logger   zerolog.Logger
}

// NewService creates a checkout service.
func NewService(
	store *cart.Store,
	contacts ContactSource,
	client apiclient.Client,
	opts Options,
	logger zerolog.Logger,
) Service {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://wa.me"
	}
	if opts.Prices == nil {
		opts.Prices = NewPriceFormatter("₹", "en-US")
	}
	if opts.Opener == nil {
		opts.Opener = NewLogOpener(logger)
	}

	return &service{
		cart:     store,
		contacts: contacts,
		client:   client,
		baseURL:  opts.BaseURL,
		prices:   opts.Prices,
		opener:   opts.Opener,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

func (s *service) Handoff(ctx context.Context) (string, error) {
	if s.cart.Snapshot().IsEmpty() {
		return "", model.ErrEmptyCart
	}

	number := s.contacts.ContactNumber()
	if NormalizeNumber(number) == "" {
		s.logger.Warn().Msg("checkout attempted without a contact number")
		return "", model.ErrNoContactNumber
	}

	// Take snapshots and clears in one step so a concurrent add either makes
	// it into this message or stays in the cart.
	taken := s.cart.Take(ctx)
	if taken.IsEmpty() {
		return "", model.ErrEmptyCart
	}

	link := DeepLink(s.baseURL, number, BuildMessage(taken, s.prices))

	if err := s.opener.Open(ctx, link); err != nil {
		s.logger.Error().Err(err).Msg("failed to open checkout link")
	}

	s.logger.Info().
		Int("item_count", taken.ItemCount).
		Str("total", taken.Total.StringFixed(2)).
		Msg("checkout handed off")

	return link, nil
}

func (s *service) SubmitOrder(ctx context.Context) (*model.OrderResponse, error) {
	snapshot := s.cart.Snapshot()
	if snapshot.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	resp, err := s.client.CreateOrder(ctx, NewOrderRequest(snapshot))
	if err != nil {
		s.logger.Error().Err(err).Int("item_count", snapshot.ItemCount).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if resp.ID == "" {
		s.logger.Error().Msg("order response carried no id")
		return nil, model.ErrInvalidResponse
	}

	// Only the ordered quantities leave the cart; items added while the
	// request was in flight remain.
	s.cart.Subtract(ctx, snapshot)

	s.logger.Info().Str("order_id", resp.ID.String()).Msg("order created successfully")

	return resp, nil
}

// NewOrderRequest converts a cart into the backend's order payload.
func NewOrderRequest(c model.Cart) *model.OrderRequest {
	items := make([]model.OrderItemRequest, len(c.Items))
	for i, item := range c.Items {
		items[i] = model.OrderItemRequest{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price.InexactFloat64(),
		}
	}

	return &model.OrderRequest{
		Items:  items,
		Total:  c.Total.InexactFloat64(),
		Status: model.OrderStatusPending,
	}
}
