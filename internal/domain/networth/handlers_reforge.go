package networth

import (
	"sort"
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

type reforgeHandler struct{}

func (reforgeHandler) Name() string { return "reforge" }

func (reforgeHandler) Applies(item *model.Item) bool {
	return item.Attributes.Has("modifier")
}

func (reforgeHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	modifier, ok := item.Attributes.String("modifier")
	if !ok {
		return Contribution{}
	}
	stone, ok := reforgeStones[strings.ToLower(modifier)]
	if !ok {
		return Contribution{}
	}
	p, ok := prices.TryGetPrice(stone)
	if !ok {
		return Contribution{}
	}
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    stone,
		Type:  "REFORGE",
		Value: p * worthReforge,
		Count: 1,
	})}
}

// runeHandler values the first rune applied to an item. Multi-rune items
// are not modeled.
type runeHandler struct{}

func (runeHandler) Name() string { return "rune" }

func (runeHandler) Applies(item *model.Item) bool {
	if item.SkyblockID == idRune || item.SkyblockID == idUniqueRune {
		return false
	}
	return len(item.Attributes.Runes) > 0
}

func (runeHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	names := make([]string, 0, len(item.Attributes.Runes))
	for name := range item.Attributes.Runes {
		names = append(names, name)
	}
	sort.Strings(names)

	name := names[0]
	key := catalog.RuneKey(name, item.Attributes.Runes[name])
	p, ok := prices.TryGetPrice(key)
	if !ok {
		return Contribution{}
	}
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    key,
		Type:  "RUNE",
		Value: p * worthRunes,
		Count: 1,
	})}
}
