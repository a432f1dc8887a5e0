package model

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Attributes is the free-form extension data of an item. Values under Extra
// arrive untyped (numbers, strings, bools and arrays may all appear under the
// same key across dumps); every accessor coerces defensively and treats a
// missing or unparsable value as absent.
type Attributes struct {
	Extra map[string]any

	Hook   *RodPart
	Line   *RodPart
	Sinker *RodPart

	// Runes maps rune type to level, e.g. {"MUSIC": 3}.
	Runes map[string]int
}

// Has reports whether key is present with a non-nil value.
func (a Attributes) Has(key string) bool {
	v, ok := a.Extra[key]
	return ok && v != nil
}

// Raw returns the untouched value under key.
func (a Attributes) Raw(key string) (any, bool) {
	v, ok := a.Extra[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Int returns the value under key truncated to an integer.
func (a Attributes) Int(key string) (int64, bool) {
	f, ok := a.Float(key)
	if !ok {
		return 0, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// IntOrZero is Int with absence collapsed to 0.
func (a Attributes) IntOrZero(key string) int64 {
	n, _ := a.Int(key)
	return n
}

// Float returns the value under key as a finite float64.
func (a Attributes) Float(key string) (float64, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// String returns the value under key as a non-empty string.
func (a Attributes) String(key string) (string, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return "", false
	}
	return ToString(v)
}

// Bool returns the value under key as a bool.
func (a Attributes) Bool(key string) (bool, bool) {
	v, ok := a.Raw(key)
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	}
	f, ok := ToFloat(v)
	if !ok {
		return false, false
	}
	return f != 0, true
}

// Strings returns the value under key as a list of non-empty strings.
// Maps are flattened to their values ordered by key so the result is stable.
func (a Attributes) Strings(key string) []string {
	v, ok := a.Raw(key)
	if !ok {
		return nil
	}
	var out []string
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, e := range t {
			if s, ok := ToString(e); ok {
				out = append(out, s)
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := ToString(t[k]); ok {
				out = append(out, s)
			}
		}
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := strings.TrimSpace(t[k]); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ToFloat coerces a loosely typed value into a finite float64.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		p, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = p
	case bool:
		if t {
			f = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToString coerces a loosely typed value into a non-empty trimmed string.
func ToString(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		f, ok := ToFloat(v)
		if !ok {
			return "", false
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}
