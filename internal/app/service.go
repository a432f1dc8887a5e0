// Package service wires the price store, the valuation pipeline and the
// worker pool into the operations exposed by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/skyforge/networth/internal/adapters/mq/worker"
	"github.com/skyforge/networth/internal/adapters/pricestore"
	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
	"github.com/skyforge/networth/internal/domain/networth"
	"github.com/skyforge/networth/internal/domain/types"
	"github.com/skyforge/networth/pkg/logger"
	"github.com/skyforge/networth/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize    = 4096
	defaultMaxBatchSize = 1000
)

// metricsObserver forwards pipeline events to the metrics package.
type metricsObserver struct{}

func (metricsObserver) HandlerApplied(name string, _ networth.Contribution) {
	metrics.RecordHandlerApplied(name)
}

func (metricsObserver) HandlerRecovered(name string, _ any) {
	metrics.RecordHandlerRecovered(name)
	metrics.RecordErrorByComponent("pipeline", "handler_panic")
}

// Service implements the API dependencies for the valuation engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	source   pricestore.Source
	store    *pricestore.Store
	pipeline *networth.Pipeline
	pool     *worker.Pool
	cache    *gocache.Cache

	// Configuration
	workerCount     int
	queueSize       int
	maxBatchSize    int
	refreshInterval time.Duration
	cacheTTL        time.Duration
	excludeCosmetic bool
	categories      networth.CategoryLookup

	// State
	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:    defaultQueueSize,
		maxBatchSize: defaultMaxBatchSize,
		categories:   networth.CategoryMap(nil),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the first price snapshot and starts the worker pool. The
// refresh loop and workers outlive ctx and stop in Stop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		return ErrNoPriceSource
	}

	s.logger.Info(ctx, "starting networth service...")

	background := context.WithoutCancel(ctx)
	store, err := pricestore.New(background, s.source,
		pricestore.WithRefreshInterval(s.refreshInterval),
		pricestore.WithLogger(s.logger.Named("pricestore")),
	)
	if err != nil {
		return fmt.Errorf("start price store: %w", err)
	}
	s.store = store

	s.pipeline = networth.New(
		networth.WithCategoryLookup(s.categories),
		networth.WithObserver(metricsObserver{}),
		networth.WithLogger(s.logger.Named("pipeline")),
	)

	s.pool = worker.NewPool(s.workerCount, s,
		worker.WithQueueCapacity(s.queueSize),
		worker.WithPoolLogger(s.logger.Named("worker-pool")),
	)
	s.pool.Start(background)

	if s.cacheTTL > 0 {
		s.cache = gocache.New(s.cacheTTL, 2*s.cacheTTL)
	}

	s.started = true
	snap, _ := s.store.Snapshot()
	s.logger.Info(ctx, "networth service started",
		logger.String("priceSource", s.source.Name()),
		logger.Int("catalogEntries", snap.Len()),
		logger.Int("workers", s.pool.Size()),
		logger.Int("handlers", len(s.pipeline.Handlers())),
		logger.Duration("resultCacheTTL", s.cacheTTL),
		logger.Bool("excludeCosmetic", s.excludeCosmetic),
	)

	return nil
}

// Stop shuts the worker pool down and closes the price store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping networth service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(ctx, "price store close", logger.Error(err))
	}
	if s.cache != nil {
		s.cache.Flush()
	}

	s.started = false
	s.logger.Info(ctx, "networth service stopped")
}

// snapshot returns the current catalog, or ErrNotStarted.
func (s *Service) snapshot() (*catalog.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Snapshot()
}

// Value values one item on the caller's goroutine.
func (s *Service) Value(ctx context.Context, item *model.Item) (*types.Valuation, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := s.Valuate(ctx, item, snap)
	metrics.RecordValuation("single", float64(time.Since(start).Microseconds())/1000)

	v := types.NewValuation(res, snap.Generation())
	return &v, nil
}

// ValueBatch values items on the worker pool, preserving input order.
func (s *Service) ValueBatch(ctx context.Context, items []*model.Item) (*types.BatchResult, error) {
	if len(items) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(items), s.maxBatchSize)
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	pool := s.pool
	s.mu.RUnlock()

	return pool.Value(ctx, items, snap)
}

// Valuate implements worker.Valuer. Results of items carrying a uuid are
// cached per item content and catalog generation when the result cache is
// enabled.
func (s *Service) Valuate(_ context.Context, item *model.Item, snap *catalog.Snapshot) networth.Result {
	key := ""
	if s.cache != nil {
		key, _ = cacheKey(item, snap.Generation())
	}
	if key != "" {
		if cached, ok := s.cache.Get(key); ok {
			metrics.RecordResultCacheHit()
			res := cached.(networth.Result) //nolint:forcetypeassert // only results are stored
			res.Calculation = slices.Clone(res.Calculation)
			return res
		}
		metrics.RecordResultCacheMiss()
	}

	res := s.pipeline.Run(item, snap)
	if s.excludeCosmetic {
		res = withoutCosmetic(res)
	}

	if key != "" {
		s.cache.SetDefault(key, res)
	}
	return res
}

// withoutCosmetic drops cosmetic entries and their value from res.
func withoutCosmetic(res networth.Result) networth.Result {
	if res.CosmeticValue == 0 {
		return res
	}
	res.Price = res.NonCosmeticPrice()
	res.CosmeticValue = 0
	res.Calculation = slices.DeleteFunc(slices.Clone(res.Calculation), func(c model.Calculation) bool {
		return c.IsCosmetic
	})
	return res
}

// CatalogKeys returns the priced keys starting with prefix.
func (s *Service) CatalogKeys(prefix string) ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Keys(prefix), nil
}

// RefreshPrices reloads the price source immediately.
func (s *Service) RefreshPrices(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	return s.store.Refresh(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":         s.started,
		"queueSize":       s.queueSize,
		"maxBatchSize":    s.maxBatchSize,
		"excludeCosmetic": s.excludeCosmetic,
		"resultCacheTTL":  s.cacheTTL.String(),
	}

	if s.started {
		snap, _ := s.store.Snapshot()
		stats["workerCount"] = s.pool.Size()
		stats["handlers"] = s.pipeline.Handlers()
		stats["priceSource"] = s.source.Name()
		stats["catalogEntries"] = snap.Len()
		stats["catalogGeneration"] = snap.Generation()
		if s.cache != nil {
			stats["resultCacheItems"] = s.cache.ItemCount()
		}
	}

	return stats
}
