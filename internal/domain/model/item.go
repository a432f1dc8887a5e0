// Package model contains domain models passed between layers.
package model

// Item is the normalized representation of one item instance being valued.
// It is built fresh from decoded inventory data right before valuation and
// is not mutated by the pipeline; running totals live in the accumulator.
type Item struct {
	SkyblockID  string   // catalog key; empty for items identified only by derived keys
	UUID        string   // in-game item uuid, when present
	Count       int      // stack size
	IsSoulbound bool     // co-op/soulbound flag
	Lore        []string // ordered lore lines, used by last-resort heuristics

	Enchantments map[string]int // enchant name -> level

	// Gems maps a slot key (e.g. "JADE_0", "COMBAT_0") to the applied
	// quality. A nil quality means "unlocked but empty". Generic slots
	// carry their gem type under "<slot>_gem".
	Gems          map[string]*string
	GemstoneSlots []GemstoneSlot // unlock cost schedule per slot, in repo order
	UnlockedSlots []string       // nil means infer from Gems

	PetInfo *PetInfo

	// UpgradeCosts is the ordered list of per-star cost schedules.
	UpgradeCosts [][]UpgradeCost

	Attributes Attributes
}

// PetInfo carries pet metadata.
type PetInfo struct {
	Type      string
	Active    bool
	Exp       float64
	Tier      string
	HeldItem  string
	CandyUsed int
	Skin      string
}

// RodPart is an applied fishing rod part (hook, line or sinker).
type RodPart struct {
	Part            string
	DonatedToMuseum bool
}

// Cost types used by gemstone slot and star upgrade schedules.
const (
	CostTypeCoins   = "COINS"
	CostTypeItem    = "ITEM"
	CostTypeEssence = "ESSENCE"
)

// UpgradeCost is one component of a star upgrade.
type UpgradeCost struct {
	Type        string // ESSENCE or ITEM
	EssenceType string // e.g. WITHER, DRAGON
	ItemID      string
	Amount      int
}

// GemstoneSlot describes one gemstone slot and what it costs to unlock.
type GemstoneSlot struct {
	SlotType string
	Costs    []SlotCost
}

// SlotCost is one component of a gemstone slot unlock.
type SlotCost struct {
	Type   string // COINS or ITEM
	ItemID string
	Amount int
	Coins  float64
}

// Calculation is one audit record of a modifier's contribution.
type Calculation struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Count      int     `json:"count"`
	IsCosmetic bool    `json:"isCosmetic,omitempty"`
}

// IsPet reports whether the item carries pet metadata.
func (i *Item) IsPet() bool {
	return i != nil && i.PetInfo != nil && i.PetInfo.Type != ""
}

// LastLoreLine returns the final lore line, or "" when there is none.
func (i *Item) LastLoreLine() string {
	if i == nil || len(i.Lore) == 0 {
		return ""
	}
	return i.Lore[len(i.Lore)-1]
}
