package networth

import (
	"slices"
	"sort"
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

// enchantedBookHandler values the enchantments stored on a book. A single
// enchantment is worth its full price; several are diluted.
type enchantedBookHandler struct{}

func (enchantedBookHandler) Name() string { return "enchanted_book" }

func (enchantedBookHandler) Applies(item *model.Item) bool {
	return item.SkyblockID == idEnchantedBook && len(item.Enchantments) > 0
}

func (enchantedBookHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	worth := bookSingleEnchantWorth
	if len(item.Enchantments) > 1 {
		worth = worthEnchantments
	}

	var total float64
	for _, name := range sortedEnchantNames(item.Enchantments) {
		key := catalog.EnchantmentKey(name, item.Enchantments[name])
		p, ok := prices.TryGetPrice(key)
		if !ok {
			continue
		}
		total += acc.Record(model.Calculation{
			ID:    key,
			Type:  "ENCHANTMENT",
			Value: p * worth,
			Count: 1,
		})
	}
	return Contribution{Value: total}
}

type enchantmentsHandler struct{}

func (enchantmentsHandler) Name() string { return "enchantments" }

func (enchantmentsHandler) Applies(item *model.Item) bool {
	return item.SkyblockID != idEnchantedBook && len(item.Enchantments) > 0
}

func (enchantmentsHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	blocked := blockedEnchantments[item.SkyblockID]

	var total float64
	for _, raw := range sortedEnchantNames(item.Enchantments) {
		name := strings.ToLower(raw)
		level := item.Enchantments[raw]
		if level <= 0 || slices.Contains(blocked, name) {
			continue
		}
		if ignored, ok := ignoredEnchantments[name]; ok && ignored == level {
			continue
		}
		if stackingEnchantments[name] {
			level = 1
		}

		if name == "efficiency" && level > silexBaseAllowance && !ignoreSilex[item.SkyblockID] {
			total += recordSilex(item, level, acc, prices)
		}

		if upgrade, ok := enchantmentUpgrades[name][level]; ok {
			if p, ok := prices.TryGetPrice(upgrade); ok {
				total += acc.Record(model.Calculation{
					ID:    upgrade,
					Type:  "ENCHANTMENT_UPGRADE",
					Value: p * worthEnchantmentUpgrades,
					Count: 1,
				})
			}
		}

		key := catalog.EnchantmentKey(name, level)
		p, ok := prices.TryGetPrice(key)
		if !ok {
			continue
		}
		total += acc.Record(model.Calculation{
			ID:    key,
			Type:  "ENCHANTMENT",
			Value: p * worthEnchantments,
			Count: 1,
		})
	}
	return Contribution{Value: total}
}

// recordSilex values the Sil Ex applied beyond the efficiency an item can
// reach with books alone.
func recordSilex(item *model.Item, level int, acc *Accumulator, prices catalog.Prices) float64 {
	allowance := silexBaseAllowance
	if item.SkyblockID == idStonkPickaxe {
		allowance = silexStonkAllowance
	}
	used := level - allowance
	if used <= 0 {
		return 0
	}
	p, ok := prices.TryGetPrice(idSilex)
	if !ok {
		return 0
	}
	return acc.Record(model.Calculation{
		ID:    idSilex,
		Type:  "SILEX",
		Value: p * float64(used) * worthSilex,
		Count: used,
	})
}

func sortedEnchantNames(enchants map[string]int) []string {
	names := make([]string, 0, len(enchants))
	for name := range enchants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
