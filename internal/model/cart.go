package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartItem is one line item in the cart.
type CartItem struct {
	ProductID ID              `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// LineTotal returns price * quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an immutable view of the cart. Total and ItemCount are derived from Items.
type Cart struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewCart builds a cart from items, computing the derived fields.
func NewCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}

	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.LineTotal())
		count += item.Quantity
	}

	return Cart{
		Items:     items,
		Total:     total,
		ItemCount: count,
	}
}

// IsEmpty reports whether the cart has no line items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a copy whose item slice is not shared with c.
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{
		Items:     items,
		Total:     c.Total,
		ItemCount: c.ItemCount,
	}
}

// cartItemJSON is the wire shape of a line item; prices are JSON numbers.
type cartItemJSON struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// MarshalJSON writes the price as a JSON number.
func (i CartItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartItemJSON{
		ProductID: i.ProductID.String(),
		Name:      i.Name,
		Price:     i.Price.InexactFloat64(),
		Quantity:  i.Quantity,
		ImageURL:  i.ImageURL,
	})
}

// MarshalJSON writes the snapshot record {items, total, item_count}.
func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(struct {
		Items     []CartItem `json:"items"`
		Total     float64    `json:"total"`
		ItemCount int        `json:"item_count"`
	}{
		Items:     items,
		Total:     c.Total.InexactFloat64(),
		ItemCount: c.ItemCount,
	})
}
