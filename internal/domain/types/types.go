// Package types contains the response shapes shared by the service, the
// worker pool and the HTTP API.
package types

import (
	"github.com/skyforge/networth/internal/domain/networth"
)

// Valuation is one valued item together with the catalog it was priced on.
type Valuation struct {
	networth.Result
	Generation uint64  `json:"catalogGeneration"`
	Total      float64 `json:"totalPrice"`
}

// NewValuation wraps res priced on catalog generation gen.
func NewValuation(res networth.Result, gen uint64) Valuation {
	return Valuation{Result: res, Generation: gen, Total: res.TotalPrice()}
}

// BatchResult holds per-item results in input order.
type BatchResult struct {
	ID         string      `json:"batchId"`
	Generation uint64      `json:"catalogGeneration"`
	Results    []Valuation `json:"results"`
	Total      float64     `json:"totalPrice"`
}

// NewBatchResult wraps results priced on catalog generation gen.
func NewBatchResult(id string, gen uint64, results []networth.Result) *BatchResult {
	b := &BatchResult{ID: id, Generation: gen, Results: make([]Valuation, len(results))}
	for i, r := range results {
		b.Results[i] = NewValuation(r, gen)
		b.Total += b.Results[i].Total
	}
	return b
}
