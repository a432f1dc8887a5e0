// Package loadtest drives a running networth server with generated item
// batches and checks the responses keep their input order.
package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumItems   int           // Number of items to generate
	BatchSize  int           // Items per batch request
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Prefix     string        // Catalog key prefix items are drawn from
	OutputFile string        // Optional file the generated items are saved to
	Verbose    bool          // Log every batch
}

// Item is the document posted for each generated item.
type Item struct {
	ID         string         `json:"id"`
	UUID       string         `json:"uuid,omitempty"`
	Count      int            `json:"count"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Stats holds run statistics.
type Stats struct {
	ItemsGenerated    int
	BatchesSubmitted  int
	BatchesSuccessful int
	BatchesFailed     int
	ItemsValued       int
	OrderMismatches   int
	TotalValue        float64
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
