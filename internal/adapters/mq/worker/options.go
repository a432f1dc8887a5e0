package worker

import (
	"github.com/skyforge/networth/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

type poolSettings struct {
	queueCapacity int
	logger        logger.Logger
}

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*poolSettings)

// WithQueueCapacity bounds the number of jobs waiting for a worker.
func WithQueueCapacity(capacity int) PoolOption {
	return func(s *poolSettings) {
		if capacity > 0 {
			s.queueCapacity = capacity
		}
	}
}

// WithPoolLogger sets the logger used by the pool.
func WithPoolLogger(l logger.Logger) PoolOption {
	return func(s *poolSettings) {
		if l != nil {
			s.logger = l
		}
	}
}
