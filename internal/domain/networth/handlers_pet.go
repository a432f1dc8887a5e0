package networth

import (
	"math"
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

type petItemHandler struct{}

func (petItemHandler) Name() string { return "pet_item" }

func (petItemHandler) Applies(item *model.Item) bool {
	return item.IsPet() && item.PetInfo.HeldItem != ""
}

func (petItemHandler) Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution {
	return Contribution{Value: recordItem(acc, prices, strings.ToUpper(item.PetInfo.HeldItem), "PET_ITEM", worthPetItem)}
}

// petCandyHandler discounts pets levelled with candy. The discount is a
// fixed share of the base price and never exceeds maxPetCandyReduction.
type petCandyHandler struct{}

func (petCandyHandler) Name() string { return "pet_candy" }

func (petCandyHandler) Applies(item *model.Item) bool {
	return item.IsPet() && item.PetInfo.CandyUsed > 0 && !blockedCandyReducePets[item.PetInfo.Type]
}

func (petCandyHandler) Calculate(item *model.Item, acc *Accumulator, _ catalog.Prices) Contribution {
	reduction := math.Min(acc.BasePrice*(1-worthPetCandy), maxPetCandyReduction)
	if reduction <= 0 {
		return Contribution{}
	}
	return Contribution{Value: acc.Record(model.Calculation{
		ID:    idCandy,
		Type:  "PET_CANDY",
		Value: -reduction,
		Count: item.PetInfo.CandyUsed,
	})}
}
