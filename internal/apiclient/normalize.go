package apiclient

import (
	"encoding/json"

	"storefront/internal/model"
)

// listWrapperFields are the object fields that may hold a wrapped list, in order.
var listWrapperFields = []string{"results", "data"}

// ParseProductList normalizes a product list body. It accepts a bare array or
// an object with the array under "results" or "data"; any other shape yields
// an empty list. Elements that do not decode are skipped.
func ParseProductList(raw []byte) []model.Product {
	list, _ := normalizeList[model.Product](raw)
	return list
}

// ParseCategoryList normalizes a category list body the same way as products.
func ParseCategoryList(raw []byte) []model.Category {
	list, _ := normalizeList[model.Category](raw)
	return list
}

// normalizeList returns the decoded list and the number of skipped elements.
func normalizeList[T any](raw []byte) ([]T, int) {
	if list, skipped, ok := decodeArray[T](raw); ok {
		return list, skipped
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		for _, field := range listWrapperFields {
			if list, skipped, ok := decodeArray[T](wrapper[field]); ok {
				return list, skipped
			}
		}
	}

	return []T{}, 0
}

// decodeArray decodes raw only when it is a JSON array.
func decodeArray[T any](raw []byte) ([]T, int, bool) {
	if len(raw) == 0 {
		return nil, 0, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, 0, false
	}

	list := make([]T, 0, len(elems))
	skipped := 0
	for _, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			skipped++
			continue
		}
		list = append(list, v)
	}
	return list, skipped, true
}
