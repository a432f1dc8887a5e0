package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skyforge/networth/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, target string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

type keysResponse struct {
	Keys []string `json:"keys"`
}

// fetchKeys lists the priced catalog keys items are drawn from.
func fetchKeys(ctx context.Context, cfg *Config) ([]string, error) {
	client := newHTTPClient(cfg.Timeout)
	target := cfg.BaseURL + "/catalog/keys?prefix=" + url.QueryEscape(cfg.Prefix)

	resp, err := client.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog keys: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog keys: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog keys returned %d", ErrUnexpectedCode, resp.StatusCode)
	}

	var out keysResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode catalog keys: %w", err)
	}
	if len(out.Keys) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoKeys, cfg.Prefix)
	}
	return out.Keys, nil
}

type batchResponse struct {
	Results []struct {
		SkyblockID string  `json:"skyblockId"`
		Total      float64 `json:"totalPrice"`
	} `json:"results"`
	Total float64 `json:"totalPrice"`
}

type batchOutcome struct {
	valued   int
	total    float64
	err      error
	mismatch bool
}

// submitBatches posts batches concurrently using a worker pool.
func submitBatches(ctx context.Context, cfg *Config, batches [][]Item, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting batches", logger.Int("batches", len(batches)), logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg.Timeout)
	target := cfg.BaseURL + "/networth/batch"

	var (
		submitted  int64
		successful int64
		failed     int64
		mismatches int64
		valued     int64
		mu         sync.Mutex
		totalValue float64
	)

	batchChan := make(chan []Item, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batchChan {
				if ctx.Err() != nil {
					continue
				}
				out := submitSingleBatch(ctx, client, target, batch)

				atomic.AddInt64(&submitted, 1)
				switch {
				case out.mismatch:
					atomic.AddInt64(&mismatches, 1)
					atomic.AddInt64(&failed, 1)
				case out.err != nil:
					atomic.AddInt64(&failed, 1)
				default:
					atomic.AddInt64(&successful, 1)
					atomic.AddInt64(&valued, int64(out.valued))
					mu.Lock()
					totalValue += out.total
					mu.Unlock()
				}

				if cfg.Verbose {
					fields := []logger.Field{logger.Int("items", len(batch)), logger.Float64("total", out.total)}
					if out.err != nil {
						fields = append(fields, logger.Error(out.err))
					}
					log.Debug(ctx, "batch submitted", fields...)
				}
			}
		}()
	}

	go func() {
		defer close(batchChan)
		for _, batch := range batches {
			select {
			case <-ctx.Done():
				return
			case batchChan <- batch:
			}
		}
	}()

	wg.Wait()

	stats.BatchesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.BatchesSuccessful = int(atomic.LoadInt64(&successful))
	stats.BatchesFailed = int(atomic.LoadInt64(&failed))
	stats.OrderMismatches = int(atomic.LoadInt64(&mismatches))
	stats.ItemsValued = int(atomic.LoadInt64(&valued))
	stats.TotalValue = totalValue
}

// submitSingleBatch posts one batch and checks each result matches the item
// at the same index.
func submitSingleBatch(ctx context.Context, client *HTTPClient, target string, batch []Item) batchOutcome {
	resp, err := client.Post(ctx, target, batch)
	if err != nil {
		return batchOutcome{err: err}
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return batchOutcome{err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return batchOutcome{err: fmt.Errorf("%w: %d", ErrUnexpectedCode, resp.StatusCode)}
	}

	var out batchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return batchOutcome{err: err}
	}
	if len(out.Results) != len(batch) {
		return batchOutcome{err: fmt.Errorf("%w: %d results for %d items", ErrOrderMismatch, len(out.Results), len(batch)), mismatch: true}
	}
	for i, r := range out.Results {
		if !strings.EqualFold(r.SkyblockID, batch[i].ID) {
			return batchOutcome{err: fmt.Errorf("%w: index %d is %s, want %s", ErrOrderMismatch, i, r.SkyblockID, batch[i].ID), mismatch: true}
		}
	}
	return batchOutcome{valued: len(out.Results), total: out.Total}
}
