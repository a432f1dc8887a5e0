package pricestore

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"
)

// FileSource reads a JSON price table from disk. Two layouts are accepted:
//
//   - a flat object {"HYPERION": 850000000, ...}, where a value may also be
//     an object carrying "price", "lowestBin" or "lowest_bin";
//   - a bazaar dump {"products": {"ID": {"quick_status": {...}}}}, priced at
//     quick_status.buyPrice (sellPrice when no buy orders exist).
type FileSource struct {
	path string
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (f *FileSource) Name() string { return "file" }

// Load implements Source.
func (f *FileSource) Load(ctx context.Context) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return ParsePrices(data)
}

// ParsePrices decodes a price table in either supported layout.
func ParsePrices(data []byte) (map[string]float64, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidData)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidData)
	}

	if products := root.Get("products"); products.IsObject() {
		return parseBazaar(products), nil
	}

	out := make(map[string]float64)
	root.ForEach(func(key, value gjson.Result) bool {
		if p, ok := priceOf(value); ok {
			out[key.String()] = p
		}
		return true
	})
	return out, nil
}

func parseBazaar(products gjson.Result) map[string]float64 {
	out := make(map[string]float64)
	products.ForEach(func(key, value gjson.Result) bool {
		qs := value.Get("quick_status")
		p := qs.Get("buyPrice").Float()
		if p <= 0 {
			p = qs.Get("sellPrice").Float()
		}
		if p > 0 && !math.IsInf(p, 0) {
			out[key.String()] = p
		}
		return true
	})
	return out
}

func priceOf(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.JSON:
		for _, field := range []string{"price", "lowestBin", "lowest_bin"} {
			if f := v.Get(field); f.Type == gjson.Number {
				return f.Float(), true
			}
		}
	}
	return 0, false
}
