package catalog

import (
	"strings"

	"storefront/internal/model"
)

// FilterProducts returns the products matching filter. Category matches either
// the category id or, case-insensitively, the category name.
func FilterProducts(products []model.Product, filter model.ProductFilter) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if filter.Featured && !p.Featured {
			continue
		}
		if filter.Category != "" &&
			p.Category.String() != filter.Category &&
			!strings.EqualFold(p.CategoryName, filter.Category) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
