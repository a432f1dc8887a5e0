package catalog

import (
	"strconv"
	"strings"
)

// EnchantmentKey returns ENCHANTMENT_{NAME}_{LEVEL}.
func EnchantmentKey(name string, level int) string {
	return "ENCHANTMENT_" + strings.ToUpper(name) + "_" + strconv.Itoa(level)
}

// GemKey returns {QUALITY}_{TYPE}_GEM.
func GemKey(quality, gemType string) string {
	return strings.ToUpper(quality) + "_" + strings.ToUpper(gemType) + "_GEM"
}

// ItemSkinKey returns {ID}_SKINNED_{SKIN}.
func ItemSkinKey(skyblockID, skin string) string {
	return strings.ToUpper(skyblockID) + "_SKINNED_" + strings.ToUpper(skin)
}

// PetSkinKey returns PET_SKIN_{SKIN}.
func PetSkinKey(skin string) string {
	return "PET_SKIN_" + strings.ToUpper(skin)
}

// NewYearCakeKey returns NEW_YEAR_CAKE_{year}.
func NewYearCakeKey(year int64) string {
	return "NEW_YEAR_CAKE_" + strconv.FormatInt(year, 10)
}

// RuneKey returns RUNE_{RUNE}_{LEVEL}.
func RuneKey(runeType string, level int) string {
	return "RUNE_" + strings.ToUpper(runeType) + "_" + strconv.Itoa(level)
}

// EssenceKey returns ESSENCE_{TYPE}.
func EssenceKey(essenceType string) string {
	return "ESSENCE_" + strings.ToUpper(essenceType)
}
