package networth

import (
	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

// upgradeLevel is the star level of a dungeon item; older dumps use
// dungeon_item_level, newer ones upgrade_level.
func upgradeLevel(item *model.Item) int {
	a := item.Attributes.IntOrZero("upgrade_level")
	b := item.Attributes.IntOrZero("dungeon_item_level")
	return int(max(a, b))
}

// masterStarsHandler values stars beyond the fifth.
type masterStarsHandler struct{}

func (masterStarsHandler) Name() string { return "master_stars" }

func (masterStarsHandler) Applies(item *model.Item) bool {
	return upgradeLevel(item) > maxEssenceStars && len(item.UpgradeCosts) <= maxStarSchedule
}

func (masterStarsHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	used := min(upgradeLevel(item)-maxEssenceStars, maxMasterStars)

	var total float64
	for star := 0; star < used; star++ {
		id := masterStars[star]
		p, ok := prices.TryGetPrice(id)
		if !ok {
			continue
		}
		total += acc.Record(model.Calculation{
			ID:    id,
			Type:  "MASTER_STAR",
			Value: p * worthMasterStar,
			Count: 1,
		})
	}
	return Contribution{Value: total}
}

// essenceStarsHandler values the per-star costs up to the current level.
type essenceStarsHandler struct{}

func (essenceStarsHandler) Name() string { return "essence_stars" }

func (essenceStarsHandler) Applies(item *model.Item) bool {
	return upgradeLevel(item) > 0 && len(item.UpgradeCosts) > 0
}

func (essenceStarsHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	stars := min(upgradeLevel(item), len(item.UpgradeCosts))

	var total float64
	for _, schedule := range item.UpgradeCosts[:stars] {
		for _, cost := range schedule {
			if cost.Amount <= 0 {
				continue
			}
			var key string
			worth := 1.0
			switch cost.Type {
			case model.CostTypeEssence:
				if cost.EssenceType == "" {
					continue
				}
				key = catalog.EssenceKey(cost.EssenceType)
				worth = worthEssence
			case model.CostTypeItem:
				if cost.ItemID == "" {
					continue
				}
				key = cost.ItemID
			default:
				continue
			}
			p, ok := prices.TryGetPrice(key)
			if !ok {
				continue
			}
			total += acc.Record(model.Calculation{
				ID:    key,
				Type:  "STAR",
				Value: p * float64(cost.Amount) * worth,
				Count: cost.Amount,
			})
		}
	}
	return Contribution{Value: total}
}
