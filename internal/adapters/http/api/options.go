package api

import "github.com/skyforge/networth/pkg/logger"

type settings struct {
	maxBodyBytes int64
	maxBatchSize int
	logger       logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*settings)

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithMaxBatchSize caps the items accepted by POST /networth/batch.
func WithMaxBatchSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
