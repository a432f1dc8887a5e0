package networth

import (
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

// recombobulatorHandler values a recombobulated item. Eligibility is a
// heuristic: any one of the predicates below is enough, and misses are
// accepted.
type recombobulatorHandler struct {
	categories CategoryLookup
}

func (recombobulatorHandler) Name() string { return "recombobulator" }

func (h recombobulatorHandler) Applies(item *model.Item) bool {
	if !isRecombobulated(item) {
		return false
	}
	return hasEnchantments(item) ||
		recombAllowedID(item) ||
		h.recombAllowedCategory(item) ||
		loreIndicatesAccessory(item)
}

func (recombobulatorHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	p, ok := prices.TryGetPrice(idRecombobulator)
	if !ok {
		return Contribution{}
	}
	worth := worthRecombobulator
	if item.SkyblockID == idBoneBoomerang {
		worth *= boneBoomerangFactor
	}
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    idRecombobulator,
		Type:  "RECOMBOBULATOR",
		Value: p * worth,
		Count: 1,
	})}
}

// isRecombobulated is true when the rarity upgrade flag is set and no
// explicit item_tier overrides the rarity.
func isRecombobulated(item *model.Item) bool {
	return item.Attributes.IntOrZero("rarity_upgrades") > 0 && !item.Attributes.Has("item_tier")
}

func hasEnchantments(item *model.Item) bool {
	return len(item.Enchantments) > 0
}

func recombAllowedID(item *model.Item) bool {
	return recombobulatedIDs[item.SkyblockID]
}

func (h recombobulatorHandler) recombAllowedCategory(item *model.Item) bool {
	if h.categories == nil || item.SkyblockID == "" {
		return false
	}
	c, ok := h.categories.Category(item.SkyblockID)
	return ok && recombobulatedCategories[strings.ToUpper(c)]
}

// loreIndicatesAccessory matches rarity lines such as "LEGENDARY ACCESSORY"
// and "EPIC HATCESSORY".
func loreIndicatesAccessory(item *model.Item) bool {
	return strings.Contains(strings.ToUpper(item.LastLoreLine()), "ACCESSORY")
}
