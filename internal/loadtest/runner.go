package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/skyforge/networth/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes a complete load run and returns its statistics.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg.NumItems < 1 || cfg.BatchSize < 1 || cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: items, batch size and workers must be positive", ErrInvalidConfig)
	}
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting networth load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("items", cfg.NumItems),
		logger.Int("batchSize", cfg.BatchSize),
		logger.Int("workers", cfg.Workers),
		logger.String("prefix", cfg.Prefix),
		logger.Duration("timeout", cfg.Timeout))

	if err := checkServiceHealth(ctx, cfg); err != nil {
		return nil, err
	}

	keys, err := fetchKeys(ctx, cfg)
	if err != nil {
		return nil, err
	}

	items, err := generateItems(ctx, cfg, keys, stats)
	if err != nil {
		return nil, err
	}

	submitBatches(ctx, cfg, chunk(items, cfg.BatchSize), stats)

	if cfg.OutputFile != "" {
		if err := saveItemsToFile(ctx, cfg.OutputFile, items); err != nil {
			logger.Get().Warn(ctx, "failed to save items to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.OrderMismatches > 0 {
		return stats, fmt.Errorf("%w: %d batches", ErrOrderMismatch, stats.OrderMismatches)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	client := newHTTPClient(cfg.Timeout)
	resp, err := client.Get(ctx, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_, _ = readResponseBody(resp)

	// The health endpoint serves Prometheus metrics; any 200 is healthy.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// saveItemsToFile writes the generated items as a JSON array.
func saveItemsToFile(ctx context.Context, filename string, items []Item) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write items: %w", err)
	}
	logger.Get().Info(ctx, "items saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, itemsPerSecond float64
	if stats.BatchesSubmitted > 0 {
		successRate = float64(stats.BatchesSuccessful) / float64(stats.BatchesSubmitted) * percent
	}
	if stats.Duration > 0 {
		itemsPerSecond = float64(stats.ItemsValued) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("itemsGenerated", stats.ItemsGenerated),
		logger.Int("batchesSubmitted", stats.BatchesSubmitted),
		logger.Int("batchesSuccessful", stats.BatchesSuccessful),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.Int("orderMismatches", stats.OrderMismatches),
		logger.Int("itemsValued", stats.ItemsValued),
		logger.Float64("totalValue", stats.TotalValue),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("itemsPerSecond", itemsPerSecond))
}
