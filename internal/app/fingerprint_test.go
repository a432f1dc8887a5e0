package service

import (
	"math"
	"testing"

	"github.com/skyforge/networth/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCacheKey(t *testing.T) {
	gem := "PERFECT"
	build := func() *model.Item {
		return &model.Item{
			SkyblockID:   "HYPERION",
			UUID:         "u1",
			Count:        1,
			Enchantments: map[string]int{"sharpness": 7, "ultimate_wise": 5},
			Gems:         map[string]*string{"SAPPHIRE_0": &gem},
			Attributes:   model.Attributes{Extra: map[string]any{"modifier": "withered", "hot_potato_count": 15}},
		}
	}

	Convey("Given items sharing a uuid", t, func() {
		base, ok := cacheKey(build(), 7)
		So(ok, ShouldBeTrue)

		Convey("Then structurally identical instances share a key", func() {
			other, _ := cacheKey(build(), 7)
			So(other, ShouldEqual, base)
		})

		Convey("Then any change to the content changes the key", func() {
			reforged := build()
			reforged.Attributes.Extra["modifier"] = "fabled"
			k1, _ := cacheKey(reforged, 7)
			So(k1, ShouldNotEqual, base)

			stacked := build()
			stacked.Count = 2
			k2, _ := cacheKey(stacked, 7)
			So(k2, ShouldNotEqual, base)

			enchanted := build()
			enchanted.Enchantments["sharpness"] = 6
			k3, _ := cacheKey(enchanted, 7)
			So(k3, ShouldNotEqual, base)
		})

		Convey("Then a new catalog generation changes the key", func() {
			next, _ := cacheKey(build(), 8)
			So(next, ShouldNotEqual, base)
		})
	})

	Convey("Given items that cannot be cached", t, func() {
		noUUID := build()
		noUUID.UUID = ""
		_, ok := cacheKey(noUUID, 1)
		So(ok, ShouldBeFalse)

		_, ok = cacheKey(nil, 1)
		So(ok, ShouldBeFalse)

		unencodable := build()
		unencodable.Attributes.Extra["paid"] = math.NaN()
		_, ok = cacheKey(unencodable, 1)
		So(ok, ShouldBeFalse)
	})
}
