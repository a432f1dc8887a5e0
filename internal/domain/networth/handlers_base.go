package networth

import (
	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

// baseOverride is embedded by handlers that may replace the base price.
type baseOverride struct{}

func (baseOverride) OverridesBase() bool { return true }

// prestigeHandler values prestiged Kuudra armor from the nearest priced
// lower tier when the item itself has no catalog price.
type prestigeHandler struct{ baseOverride }

func (prestigeHandler) Name() string { return "prestige" }

func (prestigeHandler) Applies(item *model.Item) bool {
	_, ok := prestiges[item.SkyblockID]
	return ok
}

func (prestigeHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	if _, ok := prices.TryGetPrice(item.SkyblockID); ok {
		return Contribution{}
	}
	for _, lower := range prestiges[item.SkyblockID] {
		if p, ok := prices.TryGetPrice(lower); ok && p > 0 {
			acc.OverrideBase(p, lower)
			break
		}
	}
	return Contribution{}
}

// midasHandler swaps the base of a midas weapon for its fixed high-bid price
// once the recorded paid price reaches the weapon's threshold.
type midasHandler struct{ baseOverride }

func (midasHandler) Name() string { return "midas_weapon" }

func (midasHandler) Applies(item *model.Item) bool {
	if _, ok := midasThresholds[item.SkyblockID]; !ok {
		return false
	}
	return item.Attributes.Has("winning_bid")
}

func (midasHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	m := midasThresholds[item.SkyblockID]
	bid, _ := item.Attributes.Float("winning_bid")
	extra, _ := item.Attributes.Float("additional_coins")
	if bid+extra < m.threshold {
		return Contribution{}
	}
	if p, ok := prices.TryGetPrice(m.key); ok {
		acc.OverrideBase(p, m.key)
	}
	return Contribution{}
}

// newYearCakeHandler prices a cake by its year.
type newYearCakeHandler struct{ baseOverride }

func (newYearCakeHandler) Name() string { return "new_year_cake" }

func (newYearCakeHandler) Applies(item *model.Item) bool {
	return item.SkyblockID == idNewYearCake && item.Attributes.Has("new_years_cake")
}

func (newYearCakeHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	year, ok := item.Attributes.Int("new_years_cake")
	if !ok {
		return Contribution{}
	}
	key := catalog.NewYearCakeKey(year)
	if p, ok := prices.TryGetPrice(key); ok {
		acc.OverrideBase(p, key)
	}
	return Contribution{}
}

// shensAuctionHandler raises the base to the discounted price paid at Shen's
// auction when that exceeds the current base.
type shensAuctionHandler struct{ baseOverride }

func (shensAuctionHandler) Name() string { return "shens_auction" }

func (shensAuctionHandler) Applies(item *model.Item) bool {
	a := item.Attributes
	return a.Has("price") && a.Has("auction") && a.Has("bid")
}

func (shensAuctionHandler) Calculate(item *model.Item, acc *Accumulator, _ catalog.Prices) Contribution {
	paid, ok := item.Attributes.Float("price")
	if !ok {
		return Contribution{}
	}
	paid *= worthShensAuctionPrice
	if paid > acc.BasePrice {
		acc.OverrideBase(paid, "SHENS_AUCTION")
	}
	return Contribution{}
}
