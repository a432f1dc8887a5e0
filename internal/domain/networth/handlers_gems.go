package networth

import (
	"sort"
	"strconv"
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

const gemTypeSuffix = "_gem"

// genericSlots hold any gem of a family; the applied type is stored
// separately under "<slot>_gem".
var genericSlots = map[string]bool{ //nolint:gochecknoglobals // static table
	"COMBAT":    true,
	"OFFENSIVE": true,
	"DEFENSIVE": true,
	"UNIVERSAL": true,
	"MINING":    true,
	"CHISEL":    true,
}

// gemstonesHandler values unlocked gemstone slots and the gems in them.
type gemstonesHandler struct{}

func (gemstonesHandler) Name() string { return "gemstones" }

func (gemstonesHandler) Applies(item *model.Item) bool {
	return len(item.Gems) > 0 || len(item.UnlockedSlots) > 0
}

func (gemstonesHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	total := slotUnlocks(item, acc, prices)

	for _, slot := range sortedSlotKeys(item.Gems) {
		quality := item.Gems[slot]
		if quality == nil || strings.TrimSpace(*quality) == "" {
			continue
		}
		gemType, ok := slotGemType(slot, item.Gems)
		if !ok {
			continue
		}
		key := catalog.GemKey(*quality, gemType)
		p, ok := prices.TryGetPrice(key)
		if !ok {
			continue
		}
		total += acc.Record(model.Calculation{
			ID:    key,
			Type:  "GEMSTONE",
			Value: p * worthGemstone,
			Count: 1,
		})
	}
	return Contribution{Value: total}
}

// slotUnlocks values the unlock cost of every unlocked slot with a known
// schedule. Divan armor chambers keep more of their cost than other slots.
func slotUnlocks(item *model.Item, acc *Accumulator, prices catalog.Prices) float64 {
	if len(item.GemstoneSlots) == 0 {
		return 0
	}
	unlocked := unlockedSlots(item)
	if len(unlocked) == 0 {
		return 0
	}

	worth := worthGemstoneSlots
	if strings.HasPrefix(item.SkyblockID, divanPrefix) {
		worth = worthGemstoneChambers
	}

	var total float64
	seen := make(map[string]int, len(item.GemstoneSlots))
	for _, slot := range item.GemstoneSlots {
		key := slot.SlotType + "_" + strconv.Itoa(seen[slot.SlotType])
		seen[slot.SlotType]++
		if !unlocked[key] || len(slot.Costs) == 0 {
			continue
		}

		var cost float64
		for _, c := range slot.Costs {
			switch c.Type {
			case model.CostTypeCoins:
				cost += c.Coins
			case model.CostTypeItem:
				cost += catalog.PriceOrZero(prices, c.ItemID) * float64(c.Amount)
			}
		}
		total += acc.Record(model.Calculation{
			ID:    key,
			Type:  "GEMSTONE_SLOT",
			Value: cost * worth,
			Count: 1,
		})
	}
	return total
}

// unlockedSlots returns the explicit unlocked slot list, or infers it from
// the slots present in Gems.
func unlockedSlots(item *model.Item) map[string]bool {
	out := make(map[string]bool)
	if item.UnlockedSlots != nil {
		for _, s := range item.UnlockedSlots {
			out[s] = true
		}
		return out
	}
	for slot := range item.Gems {
		if !strings.HasSuffix(slot, gemTypeSuffix) {
			out[slot] = true
		}
	}
	return out
}

// slotGemType resolves the gem type held in slot.
func slotGemType(slot string, gems map[string]*string) (string, bool) {
	if t, ok := gems[slot+gemTypeSuffix]; ok && t != nil && *t != "" {
		return *t, true
	}
	i := strings.LastIndex(slot, "_")
	if i <= 0 {
		return "", false
	}
	family := slot[:i]
	if genericSlots[family] {
		return "", false
	}
	return family, true
}

func sortedSlotKeys(gems map[string]*string) []string {
	keys := make([]string, 0, len(gems))
	for k := range gems {
		if !strings.HasSuffix(k, gemTypeSuffix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
