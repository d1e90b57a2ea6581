// Package cart owns the shopping cart and keeps its persisted snapshot in step
// with the in-memory state.
package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"

	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

// Listener receives every new cart snapshot after a mutation.
type Listener func(model.Cart)

// Store is the single owner of the cart. Every mutation recomputes the
// derived totals from the items, persists the snapshot and notifies listeners.
// Persistence is best effort: a failed write is logged and the mutation stands.
type Store struct {
	mu           sync.Mutex
	cart         model.Cart
	snapshots    storage.SnapshotStore
	key          string
	defaultImage string
	logger       zerolog.Logger

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// Options configures a Store.
type Options struct {
	// Key is the snapshot key. Default: "cart"
	Key string

	// DefaultImage is used for products without an image.
	DefaultImage string
}

// NewStore creates an empty cart store. Call Restore to rehydrate it.
func NewStore(snapshots storage.SnapshotStore, opts Options, logger zerolog.Logger) *Store {
	if opts.Key == "" {
		opts.Key = "cart"
	}

	return &Store{
		cart:         model.NewCart(nil),
		snapshots:    snapshots,
		key:          opts.Key,
		defaultImage: opts.DefaultImage,
		logger:       logger.With().Str("component", "cart-store").Logger(),
		listeners:    make(map[int]Listener),
	}
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Clone()
}

// Subscribe registers fn for future snapshots and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// AddItem adds one unit of product. An existing line for the same product id
// is incremented; otherwise a new line is appended with quantity 1.
// Failures are logged and reported as false; the cart is left unchanged.
func (s *Store) AddItem(ctx context.Context, product model.Product) bool {
	if product.ID == "" {
		s.logger.Error().Str("name", product.Name).Msg("cannot add product without id")
		return false
	}
	if product.Price.IsNegative() {
		s.logger.Error().
			Str("product_id", product.ID.String()).
			Str("price", product.Price.String()).
			Msg("cannot add product with negative price")
		return false
	}

	s.mu.Lock()
	items := s.cart.Clone().Items

	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}

	if !found {
		image := product.PrimaryImage()
		if image == "" {
			image = s.defaultImage
		}
		items = append(items, model.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  1,
			ImageURL:  image,
		})
	}

	snapshot := s.commitLocked(ctx, items)
	s.mu.Unlock()

	s.logger.Debug().
		Str("product_id", product.ID.String()).
		Int("item_count", snapshot.ItemCount).
		Msg("item added to cart")

	s.notify(snapshot)
	return true
}

// RemoveItem removes the line for productID. Removing an absent id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()

	items := make([]model.CartItem, 0, len(s.cart.Items))
	for _, item := range s.cart.Items {
		if item.ProductID != model.ID(productID) {
			items = append(items, item)
		}
	}

	if len(items) == len(s.cart.Items) {
		s.mu.Unlock()
		s.logger.Debug().Str("product_id", productID).Msg("remove ignored, item not in cart")
		return
	}

	snapshot := s.commitLocked(ctx, items)
	s.mu.Unlock()

	s.logger.Debug().Str("product_id", productID).Msg("item removed from cart")
	s.notify(snapshot)
}

// UpdateQuantity sets the quantity for productID. A quantity below 1 removes
// the line. Returns true only when a line was updated in place.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) bool {
	if quantity < 1 {
		s.RemoveItem(ctx, productID)
		return false
	}

	s.mu.Lock()
	items := s.cart.Clone().Items

	found := false
	for i := range items {
		if items[i].ProductID == model.ID(productID) {
			items[i].Quantity = quantity
			found = true
			break
		}
	}

	if !found {
		s.mu.Unlock()
		s.logger.Debug().Str("product_id", productID).Msg("quantity update ignored, item not in cart")
		return false
	}

	snapshot := s.commitLocked(ctx, items)
	s.mu.Unlock()

	s.notify(snapshot)
	return true
}

// Clear empties the cart and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart = model.NewCart(nil)
	s.deleteLocked(ctx)
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.logger.Debug().Msg("cart cleared")
	s.notify(snapshot)
}

// Take returns the current cart and empties it in one step, removing the
// persisted snapshot. Taking an empty cart changes nothing.
func (s *Store) Take(ctx context.Context) model.Cart {
	s.mu.Lock()
	taken := s.cart.Clone()
	if taken.IsEmpty() {
		s.mu.Unlock()
		return taken
	}

	s.cart = model.NewCart(nil)
	s.deleteLocked(ctx)
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.logger.Debug().Int("item_count", taken.ItemCount).Msg("cart cleared")
	s.notify(snapshot)
	return taken
}

// Subtract removes the quantities in placed from the cart, keeping anything
// added since placed was snapshotted. Lines that reach zero are dropped.
func (s *Store) Subtract(ctx context.Context, placed model.Cart) model.Cart {
	placedQty := make(map[model.ID]int, len(placed.Items))
	for _, item := range placed.Items {
		placedQty[item.ProductID] += item.Quantity
	}

	s.mu.Lock()
	items := make([]model.CartItem, 0, len(s.cart.Items))
	for _, item := range s.cart.Items {
		item.Quantity -= placedQty[item.ProductID]
		if item.Quantity >= 1 {
			items = append(items, item)
		}
	}

	var snapshot model.Cart
	if len(items) == 0 {
		s.cart = model.NewCart(nil)
		s.deleteLocked(ctx)
		snapshot = s.cart.Clone()
	} else {
		snapshot = s.commitLocked(ctx, items)
	}
	s.mu.Unlock()

	s.logger.Debug().Int("item_count", snapshot.ItemCount).Msg("placed items removed from cart")
	s.notify(snapshot)
	return snapshot
}

// deleteLocked removes the persisted snapshot. Callers hold s.mu.
func (s *Store) deleteLocked(ctx context.Context) {
	if err := s.snapshots.Delete(ctx, s.key); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to delete cart snapshot")
	}
}

// Restore replaces the cart with the persisted snapshot. A missing, malformed
// or structurally invalid snapshot yields an empty cart. Derived totals are
// recomputed from the restored items rather than trusted.
func (s *Store) Restore(ctx context.Context) model.Cart {
	cart := model.NewCart(nil)

	data, err := s.snapshots.Load(ctx, s.key)
	switch {
	case errors.Is(err, model.ErrSnapshotNotFound):
		s.logger.Debug().Str("key", s.key).Msg("no cart snapshot, starting empty")
	case err != nil:
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to load cart snapshot, starting empty")
	default:
		items, decodeErr := DecodeSnapshot(data)
		if decodeErr != nil {
			s.logger.Warn().Err(decodeErr).Str("key", s.key).Msg("invalid cart snapshot, starting empty")
		} else {
			cart = model.NewCart(items)
		}
	}

	s.mu.Lock()
	s.cart = cart
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	s.logger.Info().
		Int("lines", len(snapshot.Items)).
		Int("item_count", snapshot.ItemCount).
		Msg("cart restored")

	s.notify(snapshot)
	return snapshot
}

// commitLocked installs items as the new cart and persists it. Callers hold s.mu.
func (s *Store) commitLocked(ctx context.Context, items []model.CartItem) model.Cart {
	s.cart = model.NewCart(items)
	snapshot := s.cart.Clone()

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode cart snapshot")
		return snapshot
	}

	if err := s.snapshots.Save(ctx, s.key, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("failed to persist cart snapshot")
	}

	return snapshot
}

func (s *Store) notify(snapshot model.Cart) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.Clone())
	}
}

// errInvalidItems reports a snapshot whose items field is not a JSON array.
var errInvalidItems = errors.New("snapshot items is not an array")

// DecodeSnapshot parses a persisted cart record and returns its valid items.
// Lines with an empty product id or a quantity below 1 are dropped.
func DecodeSnapshot(data []byte) ([]model.CartItem, error) {
	var record struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(record.Items)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errInvalidItems
	}

	var items []model.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	valid := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}
		valid = append(valid, item)
	}

	return valid, nil
}
