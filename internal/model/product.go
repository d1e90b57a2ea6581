package model

import "github.com/shopspring/decimal"

// Product represents a catalogue product as served by the backend.
// Price accepts both JSON strings ("9.99") and numbers.
type Product struct {
	ID           ID              `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image,omitempty"`
	Images       []string        `json:"images,omitempty"`
	Category     ID              `json:"category,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	InStock      bool            `json:"in_stock"`
	Featured     bool            `json:"featured,omitempty"`
	Rating       *float64        `json:"rating,omitempty"`
	Discount     *float64        `json:"discount,omitempty"`
	Size         string          `json:"size,omitempty"`
	Flavour      string          `json:"flavour,omitempty"`
}

// PrimaryImage returns the first available image reference, or "".
func (p Product) PrimaryImage() string {
	if p.Image != "" {
		return p.Image
	}
	for _, img := range p.Images {
		if img != "" {
			return img
		}
	}
	return ""
}

// Category represents a product category.
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ContactNumber is the checkout destination returned by the backend.
type ContactNumber struct {
	WhatsAppNumber string `json:"whatsapp_number"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category string
	Featured bool
}
