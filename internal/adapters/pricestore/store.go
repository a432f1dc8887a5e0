// Package pricestore loads price catalogs from a Source and publishes them as
// immutable snapshots that valuation reads without locking.
package pricestore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/pkg/logger"
	"github.com/skyforge/networth/pkg/metrics"
)

// Source produces a full price table. Keys are catalog keys; the store
// normalizes them.
type Source interface {
	Name() string
	Load(ctx context.Context) (map[string]float64, error)
}

// Store holds the current catalog snapshot and optionally refreshes it in
// the background.
type Store struct {
	source          Source
	refreshInterval time.Duration
	logger          logger.Logger

	// snapshot is replaced wholesale on every publish; readers never see a
	// partially built catalog.
	snapshot atomic.Pointer[catalog.Snapshot]

	// refresh serializes reloads so two publishes cannot interleave.
	refresh sync.Mutex

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a store, performs the initial load and, when a refresh
// interval is set, starts the periodic reload loop. The initial load must
// succeed.
func New(ctx context.Context, source Source, opts ...Option) (*Store, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", ErrSourceLoad)
	}
	s := &Store{
		source:   source,
		logger:   logger.Nop(),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	if s.refreshInterval > 0 {
		s.startPeriodicRefresh(ctx)
	}
	return s, nil
}

// startPeriodicRefresh reloads the source at the configured interval. A
// failed reload keeps the previous snapshot.
func (s *Store) startPeriodicRefresh(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.logger.Warn(ctx, "price refresh failed, keeping previous snapshot",
						logger.String("source", s.source.Name()),
						logger.Error(err),
					)
				}
			}
		}
	}()
}

// Refresh loads the source and publishes a new snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	s.refresh.Lock()
	defer s.refresh.Unlock()

	start := time.Now()
	prices, err := s.source.Load(ctx)
	if err != nil {
		metrics.RecordCatalogRefreshError(s.source.Name())
		metrics.RecordErrorByComponent("pricestore", "source_load")
		return fmt.Errorf("%w: %s: %w", ErrSourceLoad, s.source.Name(), err)
	}
	snap := s.publish(prices)

	metrics.RecordCatalogRefresh(float64(time.Since(start).Milliseconds()), time.Now().Unix())
	s.logger.Debug(ctx, "price snapshot published",
		logger.String("source", s.source.Name()),
		logger.Int("entries", snap.Len()),
		logger.Any("generation", snap.Generation()),
	)
	return nil
}

// Publish replaces the current snapshot with prices.
func (s *Store) Publish(prices map[string]float64) *catalog.Snapshot {
	s.refresh.Lock()
	defer s.refresh.Unlock()
	return s.publish(prices)
}

func (s *Store) publish(prices map[string]float64) *catalog.Snapshot {
	snap := catalog.NewSnapshot(prices)
	s.snapshot.Store(snap)
	metrics.UpdateCatalog(snap.Len(), snap.Generation())
	return snap
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() (*catalog.Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Prices returns the current snapshot as a catalog.Prices, or an empty
// catalog when nothing has been published.
func (s *Store) Prices() catalog.Prices {
	if snap := s.snapshot.Load(); snap != nil {
		return snap
	}
	return catalog.Empty
}

// Close stops the refresh loop and closes the source when it holds
// resources.
func (s *Store) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	if c, ok := s.source.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
