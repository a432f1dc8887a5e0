package itemjson

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/skyforge/networth/internal/domain/networth"
)

// ParseCategories reads item categories either from a flat {"ID": "CATEGORY"}
// object or from an item repository listing {"items": [{"id", "category"}]}.
func ParseCategories(data []byte) (networth.CategoryMap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidItem)
	}
	root := gjson.ParseBytes(data)
	out := make(networth.CategoryMap)

	listing := root
	if root.IsObject() {
		listing = root.Get("items")
	}
	if listing.IsArray() {
		listing.ForEach(func(_, item gjson.Result) bool {
			id := strings.ToUpper(item.Get("id").String())
			category := strings.ToUpper(item.Get("category").String())
			if id != "" && category != "" {
				out[id] = category
			}
			return true
		})
		return out, nil
	}

	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected a category table", ErrInvalidItem)
	}
	root.ForEach(func(key, category gjson.Result) bool {
		if category.Type == gjson.String && category.String() != "" {
			out[strings.ToUpper(key.String())] = strings.ToUpper(category.String())
		}
		return true
	})
	return out, nil
}
