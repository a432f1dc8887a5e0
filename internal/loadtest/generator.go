package loadtest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/skyforge/networth/pkg/logger"
)

// Attribute values drawn for generated items.
var (
	modifiers = []string{"withered", "heroic", "fabled", "spiritual", "giant"} //nolint:gochecknoglobals // fixed vocabulary
	skins     = []string{"shadow", "wither_goggles", "frozen_blaze"}            //nolint:gochecknoglobals // fixed vocabulary
)

const (
	maxStack       = 64
	maxHotPotatoes = 15
	maxStars       = 10
	percent        = 100
)

// randomInt returns a value in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 1 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// chance reports true with probability p percent.
func chance(p int) bool {
	return randomInt(percent) < p
}

// generateItems creates cfg.NumItems documents drawn from keys.
func generateItems(ctx context.Context, cfg *Config, keys []string, stats *Stats) ([]Item, error) {
	logger.Get().Info(ctx, "generating items", logger.Int("numItems", cfg.NumItems), logger.Int("keys", len(keys)))

	items := make([]Item, cfg.NumItems)
	for i := range items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during item generation: %w", err)
		}
		items[i] = generateSingleItem(keys[randomInt(len(keys))])
	}

	stats.ItemsGenerated = len(items)
	return items, nil
}

// generateSingleItem builds one item with a random mix of modifiers.
func generateSingleItem(id string) Item {
	item := Item{ID: id, Count: 1}

	// Stackables are common; unique gear carries a uuid and modifiers.
	if chance(40) {
		item.Count = 1 + randomInt(maxStack)
		return item
	}

	item.UUID = uuid.NewString()
	attrs := map[string]any{}
	if chance(50) {
		attrs["modifier"] = modifiers[randomInt(len(modifiers))]
	}
	if chance(50) {
		attrs["hot_potato_count"] = 1 + randomInt(maxHotPotatoes)
	}
	if chance(30) {
		attrs["rarity_upgrades"] = 1
	}
	if chance(30) {
		attrs["upgrade_level"] = 1 + randomInt(maxStars)
	}
	if chance(10) {
		attrs["skin"] = skins[randomInt(len(skins))]
	}
	if len(attrs) > 0 {
		item.Attributes = attrs
	}
	return item
}

// chunk splits items into batches of at most size.
func chunk(items []Item, size int) [][]Item {
	batches := make([][]Item, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}
