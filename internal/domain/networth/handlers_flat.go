package networth

import (
	"math"
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

// applicationHandler values a consumable applied count times to an item:
// count attribute × catalog price × application worth.
type applicationHandler struct {
	name     string
	attr     string
	itemID   string
	calcType string
	worth    float64
}

func (h applicationHandler) Name() string { return h.name }

func (h applicationHandler) Applies(item *model.Item) bool {
	return item.Attributes.IntOrZero(h.attr) > 0
}

func (h applicationHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	count := int(item.Attributes.IntOrZero(h.attr))
	p, ok := prices.TryGetPrice(h.itemID)
	if !ok || count <= 0 {
		return Contribution{}
	}
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    h.itemID,
		Type:  h.calcType,
		Value: p * float64(count) * h.worth,
		Count: count,
	})}
}

func applicationHandlers() []Handler {
	return []Handler{
		applicationHandler{name: "art_of_war", attr: "art_of_war_count", itemID: "THE_ART_OF_WAR", calcType: "THE_ART_OF_WAR", worth: worthArtOfWar},
		applicationHandler{name: "art_of_peace", attr: "artOfPeaceApplied", itemID: "THE_ART_OF_PEACE", calcType: "THE_ART_OF_PEACE", worth: worthArtOfPeace},
		applicationHandler{name: "divan_powder_coating", attr: "divan_powder_coating", itemID: "DIVAN_POWDER_COATING", calcType: "DIVAN_POWDER_COATING", worth: worthDivanPowderCoating},
		applicationHandler{name: "farming_for_dummies", attr: "farming_for_dummies_count", itemID: "FARMING_FOR_DUMMIES", calcType: "FARMING_FOR_DUMMIES", worth: worthFarmingForDummies},
		applicationHandler{name: "jalapeno_book", attr: "jalapeno_count", itemID: "JALAPENO_BOOK", calcType: "JALAPENO_BOOK", worth: worthJalapenoBook},
		applicationHandler{name: "mana_disintegrator", attr: "mana_disintegrator_count", itemID: "MANA_DISINTEGRATOR", calcType: "MANA_DISINTEGRATOR", worth: worthManaDisintegrator},
		applicationHandler{name: "polarvoid_book", attr: "polarvoid", itemID: "POLARVOID_BOOK", calcType: "POLARVOID_BOOK", worth: worthPolarvoid},
		applicationHandler{name: "pocket_sack_in_a_sack", attr: "sack_pss", itemID: "POCKET_SACK_IN_A_SACK", calcType: "POCKET_SACK_IN_A_SACK", worth: worthPocketSackInASack},
		applicationHandler{name: "transmission_tuner", attr: "tuned_transmission", itemID: "TRANSMISSION_TUNER", calcType: "TUNED_TRANSMISSION", worth: worthTunedTransmission},
		applicationHandler{name: "wood_singularity", attr: "wood_singularity_count", itemID: "WOOD_SINGULARITY", calcType: "WOOD_SINGULARITY", worth: worthWoodSingularity},
		applicationHandler{name: "etherwarp_conduit", attr: "ethermerge", itemID: "ETHERWARP_CONDUIT", calcType: "ETHERWARP_CONDUIT", worth: worthEtherwarp},
	}
}

// recordItem records one applied item priced by its own catalog id.
func recordItem(acc *Accumulator, prices catalog.Prices, id, calcType string, worth float64) float64 {
	p, ok := prices.TryGetPrice(id)
	if !ok {
		return 0
	}
	return acc.Record(model.Calculation{ID: id, Type: calcType, Value: p * worth, Count: 1})
}

var drillPartAttrs = []string{"drill_part_upgrade_module", "drill_part_fuel_tank", "drill_part_engine"} //nolint:gochecknoglobals // static table

type drillPartsHandler struct{}

func (drillPartsHandler) Name() string { return "drill_parts" }

func (drillPartsHandler) Applies(item *model.Item) bool {
	for _, attr := range drillPartAttrs {
		if item.Attributes.Has(attr) {
			return true
		}
	}
	return false
}

func (drillPartsHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	var total float64
	for _, attr := range drillPartAttrs {
		part, ok := item.Attributes.String(attr)
		if !ok {
			continue
		}
		total += recordItem(acc, prices, strings.ToUpper(part), "DRILL_PART", worthDrillPart)
	}
	return Contribution{Value: total}
}

type rodPartsHandler struct{}

func (rodPartsHandler) Name() string { return "rod_parts" }

func (rodPartsHandler) Applies(item *model.Item) bool {
	a := item.Attributes
	return a.Hook != nil || a.Line != nil || a.Sinker != nil
}

func (rodPartsHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	var total float64
	for _, part := range []*model.RodPart{item.Attributes.Hook, item.Attributes.Line, item.Attributes.Sinker} {
		if part == nil || strings.TrimSpace(part.Part) == "" {
			continue
		}
		total += recordItem(acc, prices, strings.ToUpper(part.Part), "ROD_PART", worthRodPart)
	}
	return Contribution{Value: total}
}

type dyeHandler struct{}

func (dyeHandler) Name() string { return "dye" }

func (dyeHandler) Applies(item *model.Item) bool { return item.Attributes.Has("dye_item") }

func (dyeHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	dye, ok := item.Attributes.String("dye_item")
	if !ok {
		return Contribution{}
	}
	return Contribution{Value: recordItem(acc, prices, strings.ToUpper(dye), "DYE", worthDye)}
}

// enrichmentHandler values an applied enrichment at the cheapest enrichment
// on the market, since all of them are interchangeable to craft.
type enrichmentHandler struct{}

func (enrichmentHandler) Name() string { return "enrichment" }

func (enrichmentHandler) Applies(item *model.Item) bool {
	return item.Attributes.Has("talisman_enrichment")
}

func (enrichmentHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	applied, ok := item.Attributes.String("talisman_enrichment")
	if !ok {
		return Contribution{}
	}
	cheapest := math.Inf(1)
	for _, key := range enrichments {
		if p, ok := prices.TryGetPrice(key); ok && p < cheapest {
			cheapest = p
		}
	}
	if math.IsInf(cheapest, 1) {
		return Contribution{}
	}
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    "TALISMAN_ENRICHMENT_" + strings.ToUpper(applied),
		Type:  "TALISMAN_ENRICHMENT",
		Value: cheapest * worthEnrichment,
		Count: 1,
	})}
}

type boostersHandler struct{}

func (boostersHandler) Name() string { return "boosters" }

func (boostersHandler) Applies(item *model.Item) bool {
	return len(item.Attributes.Strings("boosters")) > 0
}

func (boostersHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	var total float64
	for _, b := range item.Attributes.Strings("boosters") {
		total += recordItem(acc, prices, strings.ToUpper(b)+"_BOOSTER", "BOOSTER", worthBooster)
	}
	return Contribution{Value: total}
}

type gemstonePowerScrollHandler struct{}

func (gemstonePowerScrollHandler) Name() string { return "gemstone_power_scroll" }

func (gemstonePowerScrollHandler) Applies(item *model.Item) bool {
	return item.Attributes.Has("power_ability_scroll")
}

func (gemstonePowerScrollHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	scroll, ok := item.Attributes.String("power_ability_scroll")
	if !ok {
		return Contribution{}
	}
	return Contribution{Value: recordItem(acc, prices, strings.ToUpper(scroll), "GEMSTONE_POWER_SCROLL", worthGemstonePowerScroll)}
}

type necronBladeScrollsHandler struct{}

func (necronBladeScrollsHandler) Name() string { return "necron_blade_scrolls" }

func (necronBladeScrollsHandler) Applies(item *model.Item) bool {
	return len(item.Attributes.Strings("ability_scroll")) > 0
}

func (necronBladeScrollsHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	var total float64
	for _, scroll := range item.Attributes.Strings("ability_scroll") {
		total += recordItem(acc, prices, strings.ToUpper(scroll), "NECRON_SCROLL", worthNecronBladeScroll)
	}
	return Contribution{Value: total}
}

// potatoBooksHandler splits hot_potato_count into hot potato books (the
// first ten) and fuming potato books (the rest).
type potatoBooksHandler struct{}

func (potatoBooksHandler) Name() string { return "potato_books" }

func (potatoBooksHandler) Applies(item *model.Item) bool {
	return item.Attributes.IntOrZero("hot_potato_count") > 0
}

func (potatoBooksHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	count := int(item.Attributes.IntOrZero("hot_potato_count"))
	hot := min(count, maxHotPotatoBooks)
	fuming := count - hot

	var total float64
	if p, ok := prices.TryGetPrice(idHotPotatoBook); ok {
		total += acc.Record(model.Calculation{
			ID:    idHotPotatoBook,
			Type:  "HOT_POTATO_BOOK",
			Value: p * float64(hot) * worthHotPotatoBook,
			Count: hot,
		})
	}
	if fuming > 0 {
		if p, ok := prices.TryGetPrice(idFumingPotato); ok {
			total += acc.Record(model.Calculation{
				ID:    idFumingPotato,
				Type:  "FUMING_POTATO_BOOK",
				Value: p * float64(fuming) * worthFumingPotatoBook,
				Count: fuming,
			})
		}
	}
	return Contribution{Value: total}
}

// pickonimbusHandler discounts a used pickonimbus by the durability spent.
type pickonimbusHandler struct{}

func (pickonimbusHandler) Name() string { return "pickonimbus" }

func (pickonimbusHandler) Applies(item *model.Item) bool {
	return item.SkyblockID == idPickonimbus && item.Attributes.Has("pickonimbus_durability")
}

func (pickonimbusHandler) Calculate(item *model.Item, acc *Accumulator, _ catalog.Prices) Contribution {
	durability, ok := item.Attributes.Float("pickonimbus_durability")
	if !ok {
		return Contribution{}
	}
	durability = math.Max(0, math.Min(durability, pickonimbusDurability))
	remaining := durability / pickonimbusDurability
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    "PICKONIMBUS_DURABILITY",
		Type:  "PICKONIMBUS",
		Value: acc.Price * (remaining - 1),
		Count: 1,
	})}
}

// pulseRingHandler values thunder charge in Thunder in a Bottle units.
type pulseRingHandler struct{}

func (pulseRingHandler) Name() string { return "pulse_ring" }

func (pulseRingHandler) Applies(item *model.Item) bool {
	return item.SkyblockID == idPulseRing && item.Attributes.IntOrZero("thunder_charge") > 0
}

func (pulseRingHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	charge := min(item.Attributes.IntOrZero("thunder_charge"), maxThunderCharge)
	units := int(charge / thunderChargePerUnit)
	p, ok := prices.TryGetPrice(idThunderBottle)
	if !ok || units <= 0 {
		return Contribution{}
	}
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    idThunderBottle,
		Type:  "THUNDER_CHARGE",
		Value: p * float64(units) * worthThunderInABottle,
		Count: units,
	})}
}
