// Package itemjson decodes item documents into model.Item. Attributes are
// free-form, so decoding walks the document with gjson instead of binding it
// to a fixed struct.
package itemjson

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/skyforge/networth/internal/domain/model"
)

// Attribute keys that decode into typed item fields rather than Extra.
var structuredAttrs = map[string]bool{ //nolint:gochecknoglobals // static table
	"hook":           true,
	"line":           true,
	"sinker":         true,
	"runes":          true,
	"enchantments":   true,
	"gems":           true,
	"petInfo":        true,
	"unlocked_slots": true,
}

// Decode parses one item document.
func Decode(data []byte) (*model.Item, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidItem)
	}
	return decodeResult(gjson.ParseBytes(data))
}

// DecodeMany parses a JSON array of items, or {"items": [...]}.
func DecodeMany(data []byte) ([]*model.Item, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidItem)
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("items")
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of items", ErrInvalidItem)
	}

	var (
		items []*model.Item
		err   error
	)
	root.ForEach(func(key, v gjson.Result) bool {
		var item *model.Item
		item, err = decodeResult(v)
		if err != nil {
			err = fmt.Errorf("item %d: %w", key.Int(), err)
			return false
		}
		items = append(items, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func decodeResult(v gjson.Result) (*model.Item, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: item must be an object", ErrInvalidItem)
	}
	attrs := v.Get("attributes")

	item := &model.Item{
		SkyblockID:  strings.ToUpper(strings.TrimSpace(firstString(v, "skyblockId", "id"))),
		UUID:        firstString(v, "uuid"),
		Count:       int(v.Get("count").Int()),
		IsSoulbound: v.Get("soulbound").Bool() || v.Get("isSoulbound").Bool(),
	}
	if item.UUID == "" {
		item.UUID = attrs.Get("uuid").String()
	}
	if item.Count < 1 {
		item.Count = 1
	}

	v.Get("lore").ForEach(func(_, line gjson.Result) bool {
		item.Lore = append(item.Lore, line.String())
		return true
	})

	item.Enchantments = decodeEnchantments(pick(v, attrs, "enchantments"))
	decodeGems(item, pick(v, attrs, "gems"))
	if slots := v.Get("unlockedSlots"); slots.IsArray() {
		item.UnlockedSlots = stringArray(slots)
	} else if slots := attrs.Get("unlocked_slots"); slots.IsArray() {
		item.UnlockedSlots = stringArray(slots)
	}
	item.GemstoneSlots = decodeGemstoneSlots(v.Get("gemstoneSlots"))
	item.UpgradeCosts = decodeUpgradeCosts(v.Get("upgradeCosts"))
	item.PetInfo = decodePetInfo(pick(v, attrs, "petInfo"))
	item.Attributes = decodeAttributes(attrs)

	return item, nil
}

// pick prefers the top-level field and falls back to the attribute of the
// same name, where raw game dumps keep it.
func pick(v, attrs gjson.Result, key string) gjson.Result {
	if r := v.Get(key); r.Exists() {
		return r
	}
	return attrs.Get(key)
}

func firstString(v gjson.Result, keys ...string) string {
	for _, k := range keys {
		if s := v.Get(k); s.Type == gjson.String && s.String() != "" {
			return s.String()
		}
	}
	return ""
}

func stringArray(v gjson.Result) []string {
	out := make([]string, 0)
	v.ForEach(func(_, s gjson.Result) bool {
		if s.Type == gjson.String && s.String() != "" {
			out = append(out, s.String())
		}
		return true
	})
	return out
}

func decodeEnchantments(v gjson.Result) map[string]int {
	if !v.IsObject() {
		return nil
	}
	out := make(map[string]int)
	v.ForEach(func(name, level gjson.Result) bool {
		if level.Type == gjson.Number && level.Int() > 0 {
			out[strings.ToLower(name.String())] = int(level.Int())
		}
		return true
	})
	return out
}

// decodeGems accepts slot values as a quality string, null (unlocked but
// empty) or an object carrying "quality". Raw dumps keep unlocked_slots
// inside the gems object.
func decodeGems(item *model.Item, v gjson.Result) {
	if !v.IsObject() {
		return
	}
	item.Gems = make(map[string]*string)
	v.ForEach(func(key, val gjson.Result) bool {
		slot := key.String()
		switch {
		case slot == "unlocked_slots":
			if val.IsArray() {
				item.UnlockedSlots = stringArray(val)
			}
		case val.Type == gjson.Null:
			item.Gems[slot] = nil
		case val.Type == gjson.String:
			s := val.String()
			item.Gems[slot] = &s
		case val.IsObject():
			if q := val.Get("quality"); q.Type == gjson.String {
				s := q.String()
				item.Gems[slot] = &s
			}
		}
		return true
	})
}

func decodeGemstoneSlots(v gjson.Result) []model.GemstoneSlot {
	var out []model.GemstoneSlot
	v.ForEach(func(_, s gjson.Result) bool {
		slot := model.GemstoneSlot{SlotType: strings.ToUpper(s.Get("slotType").String())}
		s.Get("costs").ForEach(func(_, c gjson.Result) bool {
			slot.Costs = append(slot.Costs, model.SlotCost{
				Type:   strings.ToUpper(c.Get("type").String()),
				ItemID: strings.ToUpper(c.Get("itemId").String()),
				Amount: int(c.Get("amount").Int()),
				Coins:  c.Get("coins").Float(),
			})
			return true
		})
		out = append(out, slot)
		return true
	})
	return out
}

func decodeUpgradeCosts(v gjson.Result) [][]model.UpgradeCost {
	var out [][]model.UpgradeCost
	v.ForEach(func(_, star gjson.Result) bool {
		costs := make([]model.UpgradeCost, 0)
		star.ForEach(func(_, c gjson.Result) bool {
			costs = append(costs, model.UpgradeCost{
				Type:        strings.ToUpper(c.Get("type").String()),
				EssenceType: strings.ToUpper(c.Get("essenceType").String()),
				ItemID:      strings.ToUpper(c.Get("itemId").String()),
				Amount:      int(c.Get("amount").Int()),
			})
			return true
		})
		out = append(out, costs)
		return true
	})
	return out
}

// decodePetInfo accepts an object or the JSON string raw dumps store.
func decodePetInfo(v gjson.Result) *model.PetInfo {
	if v.Type == gjson.String {
		if !gjson.Valid(v.String()) {
			return nil
		}
		v = gjson.Parse(v.String())
	}
	if !v.IsObject() {
		return nil
	}
	return &model.PetInfo{
		Type:      strings.ToUpper(v.Get("type").String()),
		Active:    v.Get("active").Bool(),
		Exp:       v.Get("exp").Float(),
		Tier:      strings.ToUpper(v.Get("tier").String()),
		HeldItem:  strings.ToUpper(v.Get("heldItem").String()),
		CandyUsed: int(v.Get("candyUsed").Int()),
		Skin:      strings.ToUpper(v.Get("skin").String()),
	}
}

func decodeAttributes(v gjson.Result) model.Attributes {
	var a model.Attributes
	if !v.IsObject() {
		return a
	}
	a.Extra = make(map[string]any)
	v.ForEach(func(key, val gjson.Result) bool {
		k := key.String()
		if structuredAttrs[k] {
			return true
		}
		a.Extra[k] = val.Value()
		return true
	})
	a.Hook = decodeRodPart(v.Get("hook"))
	a.Line = decodeRodPart(v.Get("line"))
	a.Sinker = decodeRodPart(v.Get("sinker"))

	if runes := v.Get("runes"); runes.IsObject() {
		a.Runes = make(map[string]int)
		runes.ForEach(func(name, level gjson.Result) bool {
			if level.Type == gjson.Number && level.Int() > 0 {
				a.Runes[strings.ToUpper(name.String())] = int(level.Int())
			}
			return true
		})
	}
	return a
}

func decodeRodPart(v gjson.Result) *model.RodPart {
	if !v.IsObject() {
		return nil
	}
	part := v.Get("part").String()
	if part == "" {
		return nil
	}
	return &model.RodPart{Part: part, DonatedToMuseum: v.Get("donated_museum").Bool()}
}
