package service

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/skyforge/networth/internal/domain/model"
)

// fingerprint hashes the canonical JSON encoding of item. Maps encode with
// sorted keys, so structurally equal items hash equally. It reports false
// when the item cannot be encoded (e.g. a NaN attribute), and such items
// are not cached.
func fingerprint(item *model.Item) (string, bool) {
	data, err := json.Marshal(item)
	if err != nil {
		return "", false
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), true
}

// cacheKey identifies a valuation by uuid, item content and catalog
// generation.
func cacheKey(item *model.Item, generation uint64) (string, bool) {
	if item == nil || item.UUID == "" {
		return "", false
	}
	fp, ok := fingerprint(item)
	if !ok {
		return "", false
	}
	return item.UUID + "@" + fp + "@" + strconv.FormatUint(generation, 10), true
}
