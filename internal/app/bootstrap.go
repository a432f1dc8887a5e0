package service

import (
	"fmt"
	"os"

	"github.com/skyforge/networth/internal/adapters/itemjson"
	"github.com/skyforge/networth/internal/adapters/pricestore"
	"github.com/skyforge/networth/internal/config"
	"github.com/skyforge/networth/pkg/logger"
)

// PriceSourceFromConfig builds the configured price source. When both a
// file and redis are set the redis hash overrides file prices.
func PriceSourceFromConfig(cfg *config.Config) pricestore.Source {
	var sources pricestore.MergedSource
	if cfg.PriceFile != "" {
		sources = append(sources, pricestore.NewFileSource(cfg.PriceFile))
	}
	if cfg.RedisAddr != "" {
		sources = append(sources, pricestore.NewRedisSource(cfg.RedisAddr, cfg.RedisKey))
	}
	switch len(sources) {
	case 0:
		return nil
	case 1:
		return sources[0]
	default:
		return sources
	}
}

// OptionsFromConfig translates cfg into service options.
func OptionsFromConfig(cfg *config.Config, log logger.Logger) ([]Option, error) {
	opts := []Option{
		WithLogger(log),
		WithPriceSource(PriceSourceFromConfig(cfg)),
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithMaxBatchSize(cfg.MaxBatchSize),
		WithPriceRefresh(cfg.PriceRefresh()),
		WithResultCacheTTL(cfg.ResultCacheTTL()),
		WithExcludeCosmetic(cfg.ExcludeCosmetic),
	}

	if cfg.CategoryFile != "" {
		data, err := os.ReadFile(cfg.CategoryFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadCategories, err)
		}
		cats, err := itemjson.ParseCategories(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadCategories, cfg.CategoryFile, err)
		}
		opts = append(opts, WithCategoryLookup(cats))
	}

	return opts, nil
}
