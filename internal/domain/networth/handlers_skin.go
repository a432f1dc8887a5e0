package networth

import (
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

// itemSkinHandler values a tradeable skin as the premium of the skinned
// variant over the bare item.
type itemSkinHandler struct{}

func (itemSkinHandler) Name() string { return "item_skin" }

func (itemSkinHandler) Applies(item *model.Item) bool {
	if item.IsSoulbound || item.IsPet() || item.SkyblockID == "" {
		return false
	}
	_, ok := item.Attributes.String("skin")
	return ok
}

func (itemSkinHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	skin, _ := item.Attributes.String("skin")
	key := catalog.ItemSkinKey(item.SkyblockID, skin)
	skinned, ok := prices.TryGetPrice(key)
	if !ok {
		return Contribution{}
	}
	base, ok := prices.TryGetPrice(item.SkyblockID)
	if !ok {
		base = acc.BasePrice
	}
	if skinned <= base {
		return Contribution{}
	}
	return Contribution{
		Value: acc.Record(model.Calculation{
			ID:         key,
			Type:       "SKIN",
			Value:      skinned - base,
			Count:      1,
			IsCosmetic: true,
		}),
		IsCosmetic: true,
	}
}

type soulboundSkinHandler struct{}

func (soulboundSkinHandler) Name() string { return "soulbound_skin" }

func (soulboundSkinHandler) Applies(item *model.Item) bool {
	if !item.IsSoulbound || item.IsPet() {
		return false
	}
	_, ok := item.Attributes.String("skin")
	return ok
}

func (soulboundSkinHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	skin, _ := item.Attributes.String("skin")
	skin = strings.ToUpper(skin)
	p, ok := prices.TryGetPrice(skin)
	if !ok {
		return Contribution{}
	}
	return Contribution{
		Value: acc.Record(model.Calculation{
			ID:         skin,
			Type:       "SOULBOUND_SKIN",
			Value:      p * worthSoulboundSkins,
			Count:      1,
			IsCosmetic: true,
		}),
		IsCosmetic: true,
	}
}

type soulboundPetSkinHandler struct{}

func (soulboundPetSkinHandler) Name() string { return "soulbound_pet_skin" }

func (soulboundPetSkinHandler) Applies(item *model.Item) bool {
	return item.IsSoulbound && item.IsPet() && item.PetInfo.Skin != ""
}

func (soulboundPetSkinHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	key := catalog.PetSkinKey(item.PetInfo.Skin)
	p, ok := prices.TryGetPrice(key)
	if !ok {
		return Contribution{}
	}
	return Contribution{
		Value: acc.Record(model.Calculation{
			ID:         key,
			Type:       "SOULBOUND_PET_SKIN",
			Value:      p * worthSoulboundPetSkins,
			Count:      1,
			IsCosmetic: true,
		}),
		IsCosmetic: true,
	}
}
