package pricestore

import (
	"context"
	"errors"
	"maps"
	"strings"

	"github.com/skyforge/networth/internal/domain/catalog"
)

// MapSource serves a fixed table. Useful for tests and one-shot CLI runs.
type MapSource map[string]float64

// Name implements Source.
func (MapSource) Name() string { return "static" }

// Load implements Source.
func (m MapSource) Load(_ context.Context) (map[string]float64, error) {
	return maps.Clone(m), nil
}

// MergedSource loads every source in order; later sources override earlier
// ones key by key, compared case-insensitively. It fails only when every source fails.
type MergedSource []Source

// Name implements Source.
func (m MergedSource) Name() string {
	names := make([]string, len(m))
	for i, s := range m {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Load implements Source.
func (m MergedSource) Load(ctx context.Context) (map[string]float64, error) {
	out := make(map[string]float64)
	var errs []error
	for _, s := range m {
		prices, err := s.Load(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		maps.Copy(out, catalog.NormalizeKeys(prices))
	}
	if len(errs) == len(m) && len(m) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Close closes every source that holds resources.
func (m MergedSource) Close() error {
	var errs []error
	for _, s := range m {
		if c, ok := s.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
