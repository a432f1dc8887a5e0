package itemjson

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode(t *testing.T) {
	Convey("Given a normalized item document", t, func() {
		doc := `{
			"skyblockId": "hyperion",
			"uuid": "0b5f6a1e",
			"count": 1,
			"lore": ["§7Gear Score", "§d§lMYTHIC DUNGEON SWORD"],
			"enchantments": {"ULTIMATE_WISE": 5, "sharpness": 7, "bad": "x"},
			"gems": {"SAPPHIRE_0": "PERFECT", "COMBAT_0": {"quality": "FLAWLESS"}, "COMBAT_0_gem": "JASPER", "AMBER_0": null},
			"unlockedSlots": ["SAPPHIRE_0", "COMBAT_0"],
			"gemstoneSlots": [{"slotType": "combat", "costs": [{"type": "coins", "coins": 250000}, {"type": "ITEM", "itemId": "flawless_jasper_gem", "amount": 4}]}],
			"upgradeCosts": [[{"type": "ESSENCE", "essenceType": "wither", "amount": 150}], [{"type": "ITEM", "itemId": "WITHER_CATALYST", "amount": 1}]],
			"attributes": {
				"modifier": "heroic",
				"rarity_upgrades": 1,
				"hot_potato_count": 15,
				"ability_scroll": ["IMPLOSION_SCROLL", "SHADOW_WARP_SCROLL"],
				"runes": {"music": 3},
				"hook": {"part": "hotspot_hook", "donated_museum": true}
			}
		}`

		item, err := Decode([]byte(doc))
		So(err, ShouldBeNil)

		Convey("Then top-level fields are normalized", func() {
			So(item.SkyblockID, ShouldEqual, "HYPERION")
			So(item.UUID, ShouldEqual, "0b5f6a1e")
			So(item.Count, ShouldEqual, 1)
			So(item.LastLoreLine(), ShouldEqual, "§d§lMYTHIC DUNGEON SWORD")
		})

		Convey("Then enchantments are lower-cased and non-numeric levels dropped", func() {
			So(item.Enchantments, ShouldResemble, map[string]int{"ultimate_wise": 5, "sharpness": 7})
		})

		Convey("Then gem slots keep quality strings and empty slots", func() {
			So(*item.Gems["SAPPHIRE_0"], ShouldEqual, "PERFECT")
			So(*item.Gems["COMBAT_0"], ShouldEqual, "FLAWLESS")
			So(*item.Gems["COMBAT_0_gem"], ShouldEqual, "JASPER")
			v, ok := item.Gems["AMBER_0"]
			So(ok, ShouldBeTrue)
			So(v, ShouldBeNil)
			So(item.UnlockedSlots, ShouldResemble, []string{"SAPPHIRE_0", "COMBAT_0"})
		})

		Convey("Then cost schedules are decoded in order", func() {
			So(item.GemstoneSlots, ShouldHaveLength, 1)
			So(item.GemstoneSlots[0].SlotType, ShouldEqual, "COMBAT")
			So(item.GemstoneSlots[0].Costs[0].Coins, ShouldEqual, 250000)
			So(item.GemstoneSlots[0].Costs[1].ItemID, ShouldEqual, "FLAWLESS_JASPER_GEM")
			So(item.UpgradeCosts, ShouldHaveLength, 2)
			So(item.UpgradeCosts[0][0].EssenceType, ShouldEqual, "WITHER")
			So(item.UpgradeCosts[1][0].ItemID, ShouldEqual, "WITHER_CATALYST")
		})

		Convey("Then attributes split into typed parts and Extra", func() {
			a := item.Attributes
			So(a.Runes, ShouldResemble, map[string]int{"MUSIC": 3})
			So(a.Hook, ShouldNotBeNil)
			So(a.Hook.Part, ShouldEqual, "hotspot_hook")
			So(a.Hook.DonatedToMuseum, ShouldBeTrue)
			So(a.Line, ShouldBeNil)
			So(a.Has("runes"), ShouldBeFalse)
			So(a.IntOrZero("hot_potato_count"), ShouldEqual, 15)
			mod, _ := a.String("modifier")
			So(mod, ShouldEqual, "heroic")
			So(a.Strings("ability_scroll"), ShouldResemble, []string{"IMPLOSION_SCROLL", "SHADOW_WARP_SCROLL"})
		})
	})

	Convey("Given a raw game dump", t, func() {
		doc := `{
			"id": "GEMSTONE_GAUNTLET",
			"attributes": {
				"uuid": "aa-bb",
				"enchantments": {"efficiency": 5},
				"gems": {"JADE_0": "FINE", "unlocked_slots": ["JADE_0", "AMBER_0"]},
				"petInfo": "{\"type\":\"ender_dragon\",\"tier\":\"LEGENDARY\",\"heldItem\":\"pet_item_tier_boost\",\"candyUsed\":3}"
			}
		}`

		item, err := Decode([]byte(doc))
		So(err, ShouldBeNil)

		Convey("Then nested fields are read from attributes", func() {
			So(item.SkyblockID, ShouldEqual, "GEMSTONE_GAUNTLET")
			So(item.UUID, ShouldEqual, "aa-bb")
			So(item.Count, ShouldEqual, 1)
			So(item.Enchantments, ShouldResemble, map[string]int{"efficiency": 5})
			So(item.UnlockedSlots, ShouldResemble, []string{"JADE_0", "AMBER_0"})
			So(item.Gems, ShouldNotContainKey, "unlocked_slots")
		})

		Convey("Then the pet info string is parsed", func() {
			So(item.IsPet(), ShouldBeTrue)
			So(item.PetInfo.Type, ShouldEqual, "ENDER_DRAGON")
			So(item.PetInfo.HeldItem, ShouldEqual, "PET_ITEM_TIER_BOOST")
			So(item.PetInfo.CandyUsed, ShouldEqual, 3)
		})
	})

	Convey("Given malformed input", t, func() {
		_, err := Decode([]byte(`{"id": `))
		So(errors.Is(err, ErrInvalidItem), ShouldBeTrue)

		_, err = Decode([]byte(`[1]`))
		So(errors.Is(err, ErrInvalidItem), ShouldBeTrue)
	})
}

func TestDecodeMany(t *testing.T) {
	Convey("Given a list of items", t, func() {
		Convey("When the list is a bare array", func() {
			items, err := DecodeMany([]byte(`[{"id": "A"}, {"id": "B", "count": 64}]`))
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 2)
			So(items[1].Count, ShouldEqual, 64)
		})

		Convey("When the list is wrapped in an items object", func() {
			items, err := DecodeMany([]byte(`{"items": [{"id": "A"}]}`))
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 1)
			So(items[0].SkyblockID, ShouldEqual, "A")
		})

		Convey("When one element is not an object", func() {
			_, err := DecodeMany([]byte(`[{"id": "A"}, 7]`))
			So(errors.Is(err, ErrInvalidItem), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "item 1")
		})

		Convey("When there is no list", func() {
			_, err := DecodeMany([]byte(`{"id": "A"}`))
			So(errors.Is(err, ErrInvalidItem), ShouldBeTrue)
		})
	})
}

func TestParseCategories(t *testing.T) {
	Convey("Given category documents", t, func() {
		Convey("When the document is an item repository listing", func() {
			cats, err := ParseCategories([]byte(`{"success": true, "items": [
				{"id": "HEGEMONY_ARTIFACT", "category": "ACCESSORY"},
				{"id": "hyperion", "category": "sword"},
				{"id": "NO_CATEGORY"}
			]}`))

			Convey("Then ids and categories are upper-cased", func() {
				So(err, ShouldBeNil)
				c, ok := cats.Category("HYPERION")
				So(ok, ShouldBeTrue)
				So(c, ShouldEqual, "SWORD")
				So(cats, ShouldHaveLength, 2)
			})
		})

		Convey("When the document is a flat table", func() {
			cats, err := ParseCategories([]byte(`{"HEGEMONY_ARTIFACT": "ACCESSORY", "BAD": 3}`))
			So(err, ShouldBeNil)
			c, _ := cats.Category("HEGEMONY_ARTIFACT")
			So(c, ShouldEqual, "ACCESSORY")
			_, ok := cats.Category("BAD")
			So(ok, ShouldBeFalse)
		})

		Convey("When the document is not JSON", func() {
			_, err := ParseCategories([]byte(`nope`))
			So(errors.Is(err, ErrInvalidItem), ShouldBeTrue)
		})
	})
}
