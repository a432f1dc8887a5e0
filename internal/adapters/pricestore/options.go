package pricestore

import (
	"time"

	"github.com/skyforge/networth/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithRefreshInterval enables periodic reloads from the source. Zero keeps
// the first published snapshot forever.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Store) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithLogger sets the logger used to report reloads.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
