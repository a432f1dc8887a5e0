package service

import (
	"time"

	"github.com/skyforge/networth/internal/adapters/pricestore"
	"github.com/skyforge/networth/internal/domain/networth"
	"github.com/skyforge/networth/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPriceSource sets where catalog prices are loaded from.
func WithPriceSource(src pricestore.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued batch items.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxBatchSize caps the items accepted by ValueBatch.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// WithPriceRefresh reloads the price source on this period.
func WithPriceRefresh(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithResultCacheTTL enables the result cache.
func WithResultCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithExcludeCosmetic drops cosmetic contributions from prices.
func WithExcludeCosmetic(exclude bool) Option {
	return func(s *Service) {
		s.excludeCosmetic = exclude
	}
}

// WithCategoryLookup sets the item category lookup.
func WithCategoryLookup(lookup networth.CategoryLookup) Option {
	return func(s *Service) {
		if lookup != nil {
			s.categories = lookup
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
