// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of batch valuation workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the number of items waiting for a worker.
	QueueSize int `koanf:"queue_size"`

	// MaxBatchSize caps the items accepted by one batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// PriceFile is a JSON price table (flat or bazaar layout).
	PriceFile string `koanf:"price_file"`

	// RedisAddr and RedisKey locate a price hash kept by an external collector.
	RedisAddr string `koanf:"redis_addr"`
	RedisKey  string `koanf:"redis_key"`

	// PriceRefreshMS reloads the price sources on this period; 0 disables it.
	PriceRefreshMS int `koanf:"price_refresh_ms"`

	// CategoryFile maps item ids to repo categories for recombobulator checks.
	CategoryFile string `koanf:"category_file"`

	// ResultCacheTTLMS caches results by item uuid per catalog generation;
	// 0 disables the cache.
	ResultCacheTTLMS int `koanf:"result_cache_ttl_ms"`

	// ExcludeCosmetic drops cosmetic contributions (skins, dyes) from prices.
	ExcludeCosmetic bool `koanf:"exclude_cosmetic"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		WorkerCount:      runtime.NumCPU(),
		QueueSize:        4096,
		MaxBatchSize:     1000,
		RedisKey:         "networth:prices",
		PriceRefreshMS:   60_000,
		ResultCacheTTLMS: 0,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PriceFile == "" && c.RedisAddr == "":
		return fmt.Errorf("%w: one of price_file or redis_addr is required", ErrInvalidConfig)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	case c.PriceRefreshMS < 0 || c.ResultCacheTTLMS < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	return nil
}

// PriceRefresh returns the price reload period.
func (c *Config) PriceRefresh() time.Duration {
	return time.Duration(c.PriceRefreshMS) * time.Millisecond
}

// ResultCacheTTL returns the result cache lifetime.
func (c *Config) ResultCacheTTL() time.Duration {
	return time.Duration(c.ResultCacheTTLMS) * time.Millisecond
}
