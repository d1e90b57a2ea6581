package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"storefront/internal/apiclient"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// ErrLoadFailed reports that the load sequence as a whole did not complete.
var ErrLoadFailed = errors.New("failed to load application data, please refresh the page to try again")

// Page is the data backing the storefront page.
type Page struct {
	Products       []model.Product  `json:"products"`
	Categories     []model.Category `json:"categories"`
	WhatsAppNumber string           `json:"whatsapp_number"`
}

// Catalog loads and caches the storefront page.
type Catalog struct {
	client         apiclient.Client
	fallbackNumber string
	logger         zerolog.Logger

	inFlight atomic.Int32

	mu   sync.RWMutex
	page Page
}

// New creates a catalog. fallbackNumber is used when the backend has no contact number.
func New(client apiclient.Client, fallbackNumber string, logger zerolog.Logger) *Catalog {
	return &Catalog{
		client:         client,
		fallbackNumber: fallbackNumber,
		logger:         logger.With().Str("component", "catalog").Logger(),
		page:           Page{Products: []model.Product{}, Categories: []model.Category{}},
	}
}

// Loading reports whether any load sequence is in flight.
func (c *Catalog) Loading() bool {
	return c.inFlight.Load() > 0
}

// Page returns the last loaded page.
func (c *Catalog) Page() Page {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Page{
		Products:       append([]model.Product{}, c.page.Products...),
		Categories:     append([]model.Category{}, c.page.Categories...),
		WhatsAppNumber: c.page.WhatsAppNumber,
	}
}

// ContactNumber returns the checkout number from the last load.
func (c *Catalog) ContactNumber() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.page.WhatsAppNumber
}

// Load fetches products, categories and the contact number concurrently.
// Each fetch degrades independently to an empty value on failure. An error is
// returned only when the sequence itself fails: the context ends before the
// page is assembled, or a fetch panics.
func (c *Catalog) Load(ctx context.Context) (Page, error) {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	c.logger.Info().Msg("loading catalog")

	var (
		wg         sync.WaitGroup
		products   []model.Product
		categories []model.Category
		number     string
		panics     atomic.Int32
	)

	run := func(name string, fetch func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panics.Add(1)
					c.logger.Error().Interface("panic", r).Str("resource", name).Msg("catalog fetch panicked")
				}
			}()
			fetch()
		}()
	}

	run("products", func() {
		list, err := c.client.ListProducts(ctx, model.ProductFilter{})
		if err != nil {
			c.logger.Error().Err(err).Msg("error fetching products")
			return
		}
		products = list
	})

	run("categories", func() {
		list, err := c.client.ListCategories(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("error fetching categories")
			return
		}
		categories = list
	})

	run("whatsapp", func() {
		contact, err := c.client.GetContactNumber(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("error fetching WhatsApp number")
			return
		}
		number = contact.WhatsAppNumber
	})

	wg.Wait()

	if panics.Load() > 0 {
		return c.Page(), ErrLoadFailed
	}
	if err := ctx.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("catalog load aborted")
		return c.Page(), fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	if products == nil {
		products = []model.Product{}
	}
	if categories == nil {
		categories = []model.Category{}
	}
	if number == "" {
		number = c.fallbackNumber
	}

	c.mu.Lock()
	c.page = Page{
		Products:       products,
		Categories:     categories,
		WhatsAppNumber: number,
	}
	c.mu.Unlock()

	c.logger.Info().
		Int("products", len(products)).
		Int("categories", len(categories)).
		Bool("has_contact_number", number != "").
		Msg("catalog loaded")

	return c.Page(), nil
}

// Product returns a product from the cached page, falling back to the backend.
// Returns model.ErrProductNotFound when the backend answers 404.
func (c *Catalog) Product(ctx context.Context, id string) (*model.Product, error) {
	c.mu.RLock()
	for _, p := range c.page.Products {
		if p.ID.String() == id {
			product := p
			c.mu.RUnlock()
			return &product, nil
		}
	}
	c.mu.RUnlock()

	product, err := c.client.GetProduct(ctx, id)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	return product, nil
}
