// Package catalog defines the read-only price catalog consumed by valuation.
package catalog

import (
	"math"
	"sort"
	"strings"
	"sync/atomic"
)

// Prices is the contract the valuation engine reads prices through.
// Implementations must be safe for concurrent readers and must never
// fabricate a price for an absent key.
type Prices interface {
	TryGetPrice(key string) (float64, bool)
}

// generation numbers every snapshot built by this process.
var generation atomic.Uint64 //nolint:gochecknoglobals // process-wide snapshot counter

// Snapshot is an immutable price catalog.
type Snapshot struct {
	prices     map[string]float64
	generation uint64
}

// NewSnapshot copies prices into a new immutable snapshot. Keys are
// normalized with NormalizeKeys; NaN, infinite and negative prices are
// dropped.
func NewSnapshot(prices map[string]float64) *Snapshot {
	return &Snapshot{
		prices:     NormalizeKeys(prices),
		generation: generation.Add(1),
	}
}

// NormalizeKeys returns a copy of prices with upper-cased keys, dropping
// empty keys and NaN, infinite or negative prices. When several keys fold
// to the same upper-case key, a key already upper-case wins; otherwise the
// first variant in byte order wins.
func NormalizeKeys(prices map[string]float64) map[string]float64 {
	keys := make([]string, 0, len(prices))
	for k, v := range prices {
		if k == "" || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		if upper := strings.ToUpper(k); upper == k {
			out[k] = prices[k]
		}
	}
	for _, k := range keys {
		upper := strings.ToUpper(k)
		if _, taken := out[upper]; !taken {
			out[upper] = prices[k]
		}
	}
	return out
}

// TryGetPrice returns the price stored under key.
func (s *Snapshot) TryGetPrice(key string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.prices[key]
	return v, ok
}

// Len returns the number of priced keys.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.prices)
}

// Generation identifies this snapshot among all snapshots built in-process.
func (s *Snapshot) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.generation
}

// Keys returns the sorted keys starting with prefix.
func (s *Snapshot) Keys(prefix string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0)
	for k := range s.prices {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Empty is a catalog without any prices.
var Empty Prices = NewSnapshot(nil) //nolint:gochecknoglobals // shared immutable value

// PriceOrZero returns the price under key or 0 when absent.
func PriceOrZero(p Prices, key string) float64 {
	if p == nil {
		return 0
	}
	v, _ := p.TryGetPrice(key)
	return v
}
